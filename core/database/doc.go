// Package database handles connections to the change-journal database.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// based on the application's configuration.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies pool settings and
// verifies the connection with a bounded ping. SQLite is the default so the
// journal works without any server; MySQL suits shared installations.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Journal disabled", zap.Error(err))
//	}
package database
