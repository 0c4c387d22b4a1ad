package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ignite/mailroom/internal/domain"
	"github.com/ignite/mailroom/internal/service/campaign"
	"github.com/ignite/mailroom/internal/store"
)

// CampaignRepo implements campaign.Repository against PostgreSQL.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

func (r *CampaignRepo) Create(ctx context.Context, name string, emails []string) (*domain.Campaign, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create campaign: %w", err)
	}
	defer tx.Rollback()

	c, err := store.Create(ctx, tx, campaignMapper, store.Fields{"name": name})
	if err != nil {
		return nil, err
	}
	for _, email := range emails {
		t, err := store.Create(ctx, tx, targetMapper, store.Fields{
			"campaign_id": c.ID,
			"email":       email,
		})
		if err != nil {
			return nil, err
		}
		c.Targets = append(c.Targets, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create campaign: %w", err)
	}
	return &c, nil
}

func (r *CampaignRepo) List(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := store.All(ctx, r.db, campaignMapper)
	if err != nil {
		return nil, err
	}
	for i := range campaigns {
		targets, err := store.ByField(ctx, r.db, targetMapper, "campaign_id", campaigns[i].ID)
		if err != nil {
			return nil, err
		}
		campaigns[i].Targets = targets
	}
	return campaigns, nil
}

func (r *CampaignRepo) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := store.ByID(ctx, r.db, campaignMapper, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	targets, err := store.ByField(ctx, r.db, targetMapper, "campaign_id", id)
	if err != nil {
		return nil, err
	}
	c.Targets = targets
	return &c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, id int64, name string, emails []string) (*domain.Campaign, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update campaign: %w", err)
	}
	defer tx.Rollback()

	c, err := store.Update(ctx, tx, campaignMapper, id, store.Fields{"name": name})
	if errors.Is(err, store.ErrNotFound) {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	existing, err := store.ByField(ctx, tx, targetMapper, "campaign_id", id)
	if err != nil {
		return nil, err
	}
	existingEmails := make([]string, 0, len(existing))
	idByEmail := make(map[string]int64, len(existing))
	for _, t := range existing {
		existingEmails = append(existingEmails, t.Email)
		idByEmail[t.Email] = t.ID
	}

	toAdd, toRemove := campaign.DiffEmails(existingEmails, emails)
	for _, email := range toRemove {
		if _, err := store.Delete(ctx, tx, targetMapper, idByEmail[email]); err != nil {
			return nil, err
		}
	}
	for _, email := range toAdd {
		if _, err := store.Create(ctx, tx, targetMapper, store.Fields{
			"campaign_id": id,
			"email":       email,
		}); err != nil {
			return nil, err
		}
	}

	targets, err := store.ByField(ctx, tx, targetMapper, "campaign_id", id)
	if err != nil {
		return nil, err
	}
	c.Targets = targets

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update campaign: %w", err)
	}
	return &c, nil
}

func (r *CampaignRepo) Delete(ctx context.Context, id int64) (*domain.Campaign, error) {
	// Targets go with the campaign via ON DELETE CASCADE.
	c, err := store.Delete(ctx, r.db, campaignMapper, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
