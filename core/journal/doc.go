// Package journal keeps a database history of the file changes made by each
// persistence setup run.
//
// Entries are stored in the journal_entries table through gorm, one row per
// changed file, grouped by a run id. The journal is diagnostic only: callers
// log a failed Record and carry on.
//
//	store := journal.NewStore(db, logger)
//	err := store.Migrate()
//	err = store.Record(ctx, journal.Run{ID: runID, Changes: changes})
//	entries, err := store.List(ctx, 20)
package journal
