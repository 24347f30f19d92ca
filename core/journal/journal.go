package journal

import (
	"context"
	"fmt"
	"time"

	"persistence-setup/core/filemanager"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLimit bounds List when no positive limit is given.
const DefaultLimit = 50

// Entry is one journaled file change.
type Entry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RunID       string    `json:"run_id" gorm:"type:varchar(36);index;not null"`
	Provider    string    `json:"provider" gorm:"type:varchar(32);not null"`
	Database    string    `json:"database" gorm:"type:varchar(32);not null"`
	Path        string    `json:"path" gorm:"type:varchar(255);not null"`
	Action      string    `json:"action" gorm:"type:varchar(16);not null"`
	Description string    `json:"description" gorm:"type:varchar(512)"`
	DryRun      bool      `json:"dry_run"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Entry) TableName() string {
	return "journal_entries"
}

// Run is the outcome of one reconciliation to be journaled.
type Run struct {
	ID       string
	Provider string
	Database string
	DryRun   bool
	Changes  []filemanager.Change
}

// Store persists journal entries with gorm.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a Store.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the journal table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate journal: %w", err)
	}
	return nil
}

// Record stores every change of run. Runs without changes are not stored.
func (s *Store) Record(ctx context.Context, run Run) error {
	if len(run.Changes) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(run.Changes))
	for _, c := range run.Changes {
		entries = append(entries, Entry{
			RunID:       run.ID,
			Provider:    run.Provider,
			Database:    run.Database,
			Path:        c.Path,
			Action:      string(c.Action),
			Description: c.Description,
			DryRun:      run.DryRun,
		})
	}

	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return fmt.Errorf("failed to record journal run %s: %w", run.ID, err)
	}
	s.logger.Debug("Journal run recorded", zap.String("run_id", run.ID), zap.Int("entries", len(entries)))
	return nil
}

// List returns the latest entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var entries []Entry
	if err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}
