// Package config provides configuration management for the persistence setup tool.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Default values live in `default` struct tags
// on each partial configuration and are registered by reflection.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Project: where the reconciled project lives (local directory or object storage)
//   - Rules: optional override for the embedded rules matrix
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: change journal connection (sqlite or mysql)
//   - Server: HTTP server settings (port, API key)
//   - Log: Logging level and format
//
// Environment keys follow the nesting: PROJECT_ROOT, DATABASE_ENABLED, LOG_LEVEL.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Project.Root)
package config
