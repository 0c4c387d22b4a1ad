package campaign

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ignite/mailroom/internal/domain"
	"github.com/ignite/mailroom/internal/pkg/logger"
)

// Service implements campaign business logic on top of a Repository.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a campaign service backed by the given repository.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Detail is the single-campaign read view: the campaign row plus a flat list
// of its target email strings.
type Detail struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Targets   []string  `json:"targets"`
}

// Create validates and persists a new campaign together with its deduplicated
// target addresses. The whole write is atomic.
func (s *Service) Create(ctx context.Context, name string, emails []string) (*domain.Campaign, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	unique, err := normalizeEmails(emails)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, name, unique)
	if err != nil {
		return nil, err
	}
	s.log.Info("campaign created", "id", c.ID, "targets", len(unique))
	return c, nil
}

// List returns all campaigns newest-first with nested target detail.
func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	return s.repo.List(ctx)
}

// Get returns one campaign with a flat list of its target emails.
func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	targets := make([]string, 0, len(c.Targets))
	for _, t := range c.Targets {
		targets = append(targets, t.Email)
	}
	return &Detail{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, Targets: targets}, nil
}

// Update renames the campaign and reconciles its target set. The name change
// and the target diff are applied in one transaction; the diff is computed
// from data read inside that transaction, so concurrent updates are
// last-write-wins.
func (s *Service) Update(ctx context.Context, id int64, name string, emails []string) (*domain.Campaign, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	unique, err := normalizeEmails(emails)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Update(ctx, id, name, unique)
	if err != nil {
		return nil, err
	}
	s.log.Info("campaign updated", "id", id)
	return c, nil
}

// Delete removes a campaign and, by cascade, its targets.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("campaign removed", "id", id)
	return c, nil
}

// normalizeEmails trims whitespace, drops empty strings, deduplicates by
// exact match preserving first-seen order, and rejects anything that isn't a
// syntactically valid address.
func normalizeEmails(emails []string) ([]string, error) {
	seen := make(map[string]bool, len(emails))
	unique := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		if _, err := mail.ParseAddress(e); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, e)
		}
		seen[e] = true
		unique = append(unique, e)
	}
	return unique, nil
}
