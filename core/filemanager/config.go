package filemanager

const (
	BackendLocal   = "local"
	BackendStorage = "storage"
)

// Config holds configuration for the project file backend.
type Config struct {
	// Backend selects where project files live (local, storage).
	Backend string `mapstructure:"backend" default:"local"`
	// Root is the project directory for the local backend.
	Root string `mapstructure:"root" default:"."`
	// Prefix is the object key prefix for the storage backend.
	Prefix string `mapstructure:"prefix" default:""`
}
