package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/ignite/mailroom/internal/service/campaign"
)

const (
	insertCampaignSQL = "INSERT INTO campaigns (name) VALUES ($1) RETURNING id, name, created_at"
	insertTargetSQL   = "INSERT INTO campaign_targets (campaign_id, email) VALUES ($1, $2) RETURNING id, campaign_id, email, added_at"
	selectTargetsSQL  = "SELECT id, campaign_id, email, added_at FROM campaign_targets WHERE campaign_id = $1 ORDER BY added_at DESC"
	updateCampaignSQL = "UPDATE campaigns SET name = $1 WHERE id = $2 RETURNING id, name, created_at"
	deleteCampaignSQL = "DELETE FROM campaigns WHERE id = $1 RETURNING id, name, created_at"
	deleteTargetSQL   = "DELETE FROM campaign_targets WHERE id = $1 RETURNING id, campaign_id, email, added_at"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func campaignRow(id int64, name string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow(id, name, at)
}

func targetRow(id, campaignID int64, email string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "campaign_id", "email", "added_at"}).
		AddRow(id, campaignID, email, at)
}

func TestCreateCommitsCampaignAndTargets(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertCampaignSQL)).
		WithArgs("launch").WillReturnRows(campaignRow(1, "launch", now))
	mock.ExpectQuery(regexp.QuoteMeta(insertTargetSQL)).
		WithArgs(int64(1), "a@x.com").WillReturnRows(targetRow(10, 1, "a@x.com", now))
	mock.ExpectQuery(regexp.QuoteMeta(insertTargetSQL)).
		WithArgs(int64(1), "b@x.com").WillReturnRows(targetRow(11, 1, "b@x.com", now))
	mock.ExpectCommit()

	c, err := repo.Create(context.Background(), "launch", []string{"a@x.com", "b@x.com"})
	require.NoError(t, err)
	require.Len(t, c.Targets, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackOnTargetFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertCampaignSQL)).
		WithArgs("launch").WillReturnRows(campaignRow(1, "launch", now))
	mock.ExpectQuery(regexp.QuoteMeta(insertTargetSQL)).
		WithArgs(int64(1), "a@x.com").
		WillReturnError(errors.New("pq: value too long"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), "launch", []string{"a@x.com"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInsertsOnlyMissingTargets(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(updateCampaignSQL)).
		WithArgs("launch", int64(1)).WillReturnRows(campaignRow(1, "launch", now))
	mock.ExpectQuery(regexp.QuoteMeta(selectTargetsSQL)).
		WithArgs(int64(1)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "campaign_id", "email", "added_at"}).
			AddRow(int64(10), int64(1), "a@x.com", now).
			AddRow(int64(11), int64(1), "b@x.com", now))
	// existing {a,b}, desired {a,b,c}: exactly one insert, zero deletes
	mock.ExpectQuery(regexp.QuoteMeta(insertTargetSQL)).
		WithArgs(int64(1), "c@x.com").WillReturnRows(targetRow(12, 1, "c@x.com", now))
	mock.ExpectQuery(regexp.QuoteMeta(selectTargetsSQL)).
		WithArgs(int64(1)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "campaign_id", "email", "added_at"}).
			AddRow(int64(12), int64(1), "c@x.com", now).
			AddRow(int64(11), int64(1), "b@x.com", now).
			AddRow(int64(10), int64(1), "a@x.com", now))
	mock.ExpectCommit()

	c, err := repo.Update(context.Background(), 1, "launch", []string{"a@x.com", "b@x.com", "c@x.com"})
	require.NoError(t, err)
	require.Len(t, c.Targets, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDeletesRemovedTargets(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(updateCampaignSQL)).
		WithArgs("launch", int64(1)).WillReturnRows(campaignRow(1, "launch", now))
	mock.ExpectQuery(regexp.QuoteMeta(selectTargetsSQL)).
		WithArgs(int64(1)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "campaign_id", "email", "added_at"}).
			AddRow(int64(10), int64(1), "a@x.com", now).
			AddRow(int64(11), int64(1), "b@x.com", now))
	mock.ExpectQuery(regexp.QuoteMeta(deleteTargetSQL)).
		WithArgs(int64(11)).WillReturnRows(targetRow(11, 1, "b@x.com", now))
	mock.ExpectQuery(regexp.QuoteMeta(selectTargetsSQL)).
		WithArgs(int64(1)).WillReturnRows(targetRow(10, 1, "a@x.com", now))
	mock.ExpectCommit()

	c, err := repo.Update(context.Background(), 1, "launch", []string{"a@x.com"})
	require.NoError(t, err)
	require.Len(t, c.Targets, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingCampaignIsNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(updateCampaignSQL)).
		WithArgs("launch", int64(99)).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 99, "launch", nil)
	require.ErrorIs(t, err, campaign.ErrNotFound)
}

func TestDeleteMissingCampaignIsNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(deleteCampaignSQL)).
		WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), 99)
	require.ErrorIs(t, err, campaign.ErrNotFound)
}
