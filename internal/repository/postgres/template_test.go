package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/ignite/mailroom/internal/service/template"
)

// date_ts is database-defaulted, so Create never supplies it.
const insertTemplateSQL = "INSERT INTO templates (template_name, sender, subject, from_email, body) " +
	"VALUES ($1, $2, $3, $4, $5) RETURNING id, template_name, date_ts, sender, subject, from_email, body"

func templateRow(id int64, name string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "template_name", "date_ts", "sender", "subject", "from_email", "body"}).
		AddRow(id, name, at, "Acme", "hello", "", "body text")
}

func TestTemplateCreateReturnsStoredRow(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTemplateRepo(db)

	in := template.Input{Name: "welcome", Sender: "Acme", Subject: "hello", Body: "body text"}
	mock.ExpectQuery(regexp.QuoteMeta(insertTemplateSQL)).
		WithArgs("welcome", "Acme", "hello", "", "body text").
		WillReturnRows(templateRow(1, "welcome", time.Now()))

	tpl, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, int64(1), tpl.ID)
	require.Equal(t, "welcome", tpl.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateUpdateMissingIsNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTemplateRepo(db)

	mock.ExpectQuery("UPDATE templates SET").WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 9, template.Input{
		Name: "welcome", Sender: "Acme", Subject: "hello", Body: "body text",
	})
	require.ErrorIs(t, err, template.ErrNotFound)
}

func TestTemplateDeleteMissingIsNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTemplateRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"DELETE FROM templates WHERE id = $1 RETURNING id, template_name, date_ts, sender, subject, from_email, body")).
		WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), 9)
	require.ErrorIs(t, err, template.ErrNotFound)
}
