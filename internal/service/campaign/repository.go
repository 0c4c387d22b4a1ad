package campaign

import (
	"context"

	"github.com/ignite/mailroom/internal/domain"
)

// Repository defines the data access contract for campaigns and their
// targets. Implementations must make every mutating operation atomic: a
// campaign and its targets persist together or not at all.
type Repository interface {
	// Create inserts a campaign plus one target row per email, in one
	// transaction, and returns the campaign with its targets.
	Create(ctx context.Context, name string, emails []string) (*domain.Campaign, error)

	// List returns all campaigns newest-first, each with its full target
	// detail. No campaigns is an empty slice, not an error.
	List(ctx context.Context) ([]domain.Campaign, error)

	// Get returns a single campaign with its targets. Returns ErrNotFound
	// if it doesn't exist.
	Get(ctx context.Context, id int64) (*domain.Campaign, error)

	// Update renames the campaign and reconciles its target set against
	// emails (inserting missing, deleting surplus), in one transaction.
	// Returns ErrNotFound if the campaign doesn't exist.
	Update(ctx context.Context, id int64, name string, emails []string) (*domain.Campaign, error)

	// Delete removes the campaign, cascading to its targets, and returns
	// its prior state. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id int64) (*domain.Campaign, error)
}

// DiffEmails computes the set difference between the target emails a campaign
// currently has and the desired set: toAdd = desired − existing and
// toRemove = existing − desired, by exact string match. Order is preserved
// from the input slices so callers behave deterministically.
func DiffEmails(existing, desired []string) (toAdd, toRemove []string) {
	has := make(map[string]bool, len(existing))
	for _, e := range existing {
		has[e] = true
	}
	want := make(map[string]bool, len(desired))
	for _, e := range desired {
		want[e] = true
	}
	for _, e := range desired {
		if !has[e] {
			toAdd = append(toAdd, e)
		}
	}
	for _, e := range existing {
		if !want[e] {
			toRemove = append(toRemove, e)
		}
	}
	return toAdd, toRemove
}
