// Package template implements CRUD over reusable message templates and
// preview rendering of their subject/body.
package template

import (
	"context"
	"fmt"

	"github.com/ignite/mailroom/internal/domain"
	"github.com/ignite/mailroom/internal/pkg/logger"
)

// Input holds the writable fields of a template. FromEmail is optional and
// defaults to the empty string.
type Input struct {
	Name      string `json:"template_name"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	FromEmail string `json:"from_email"`
	Body      string `json:"body"`
}

func (in Input) validate() error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: template_name", ErrMissingField)
	case in.Sender == "":
		return fmt.Errorf("%w: sender", ErrMissingField)
	case in.Subject == "":
		return fmt.Errorf("%w: subject", ErrMissingField)
	case in.Body == "":
		return fmt.Errorf("%w: body", ErrMissingField)
	}
	return nil
}

// Repository defines the data access contract for templates.
type Repository interface {
	// Create inserts a template and returns it as stored.
	Create(ctx context.Context, in Input) (*domain.Template, error)

	// All returns every template, newest-first.
	All(ctx context.Context) ([]domain.Template, error)

	// Get returns one template. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id int64) (*domain.Template, error)

	// Update replaces the writable fields of a template. Returns
	// ErrNotFound if it doesn't exist.
	Update(ctx context.Context, id int64, in Input) (*domain.Template, error)

	// Delete removes a template and returns its prior state. Returns
	// ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id int64) (*domain.Template, error)
}

// Service implements template business logic.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a template service backed by the given repository.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create validates and persists a new template.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Template, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("template created", "id", t.ID, "name", t.Name)
	return t, nil
}

// List returns all templates newest-first. No templates is an empty slice.
func (s *Service) List(ctx context.Context) ([]domain.Template, error) {
	return s.repo.All(ctx)
}

// Get returns one template by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Template, error) {
	return s.repo.Get(ctx, id)
}

// Update validates and replaces a template's fields.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Template, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("template updated", "id", id)
	return t, nil
}

// Delete removes a template and returns its prior state.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Template, error) {
	t, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("template removed", "id", id)
	return t, nil
}
