package history_test

import (
	"context"
	"errors"
	"testing"

	"docker-up/core/database"
	"docker-up/core/history"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *history.GormRecorder {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	rec := history.NewGormRecorder(db)
	require.NoError(t, rec.Migrate())
	return rec
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGormRecorder_RecordAndRecent(t *testing.T) {
	rec := setupSQLite(t)
	ctx := context.Background()

	for _, name := range []string{"app_front", "app_data", "app_web"} {
		require.NoError(t, rec.Record(ctx, &history.Record{
			RunID:  "run-1",
			Kind:   "network",
			Name:   name,
			Action: "up",
			Status: history.StatusOK,
		}))
	}

	recent, err := rec.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "app_web", recent[0].Name)
	assert.Equal(t, "app_data", recent[1].Name)
	assert.False(t, recent[0].CreatedAt.IsZero())

	all, err := rec.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGormRecorder_RecordFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `reconcile_history`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := history.NewGormRecorder(db).Record(context.Background(), &history.Record{Kind: "volume", Name: "app_data", Action: "down"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record down volume/app_data")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecorder_RecentQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "run_id", "kind", "name", "action", "status"}).
		AddRow(7, "run-2", "service", "app_web", "up", "failed")
	mock.ExpectQuery("SELECT \\* FROM `reconcile_history` ORDER BY id DESC LIMIT").WillReturnRows(rows)

	records, err := history.NewGormRecorder(db).Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint(7), records[0].ID)
	assert.Equal(t, history.StatusFailed, records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew(t *testing.T) {
	assert.IsType(t, history.Nop{}, history.New(nil))

	records, err := history.Nop{}.Recent(context.Background(), 5)
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, history.Nop{}.Record(context.Background(), &history.Record{}))
}
