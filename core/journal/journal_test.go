package journal

import (
	"context"
	"testing"
	"time"

	"persistence-setup/core/database"
	"persistence-setup/core/filemanager"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

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

func sampleRun() Run {
	return Run{
		ID:       "run-1",
		Provider: "HIBERNATE",
		Database: "MYSQL",
		Changes: []filemanager.Change{
			{Path: "pom.xml", Action: filemanager.ActionUpdated, Description: "dependencies"},
			{Path: "src/main/resources/META-INF/persistence.xml", Action: filemanager.ActionCreated},
		},
	}
}

func TestStore_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := NewStore(db, zap.NewNop())
	require.NoError(t, store.Migrate())

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, sampleRun()))
	require.NoError(t, store.Record(ctx, Run{ID: "empty"}))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "src/main/resources/META-INF/persistence.xml", entries[0].Path, "newest first")
	assert.Equal(t, "created", entries[0].Action)
	assert.Equal(t, "run-1", entries[1].RunID)
	assert.Equal(t, "MYSQL", entries[1].Database)

	entries, err = store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_RecordMySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `journal_entries`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	require.NoError(t, store.Record(context.Background(), sampleRun()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `journal_entries`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.Record(context.Background(), sampleRun())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record journal run run-1")
}

func TestStore_ListMySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "run_id", "provider", "database", "path", "action", "description", "dry_run", "created_at"}).
		AddRow(2, "run-1", "HIBERNATE", "MYSQL", "pom.xml", "updated", "", false, now)
	mock.ExpectQuery("SELECT \\* FROM `journal_entries` ORDER BY id desc LIMIT").
		WillReturnRows(rows)

	entries, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
