package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ignite/mailroom/internal/domain"
	"github.com/ignite/mailroom/internal/service/template"
	"github.com/ignite/mailroom/internal/store"
)

// TemplateRepo implements template.Repository against PostgreSQL.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template repository.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

func fields(in template.Input) store.Fields {
	return store.Fields{
		"template_name": in.Name,
		"sender":        in.Sender,
		"subject":       in.Subject,
		"from_email":    in.FromEmail,
		"body":          in.Body,
	}
}

func (r *TemplateRepo) Create(ctx context.Context, in template.Input) (*domain.Template, error) {
	t, err := store.Create(ctx, r.db, templateMapper, fields(in))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepo) All(ctx context.Context) ([]domain.Template, error) {
	return store.All(ctx, r.db, templateMapper)
}

func (r *TemplateRepo) Get(ctx context.Context, id int64) (*domain.Template, error) {
	t, err := store.ByID(ctx, r.db, templateMapper, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, template.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepo) Update(ctx context.Context, id int64, in template.Input) (*domain.Template, error) {
	t, err := store.Update(ctx, r.db, templateMapper, id, fields(in))
	if errors.Is(err, store.ErrNotFound) {
		return nil, template.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepo) Delete(ctx context.Context, id int64) (*domain.Template, error) {
	t, err := store.Delete(ctx, r.db, templateMapper, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, template.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
