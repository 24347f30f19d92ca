package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// ErrTemplateNotFound is returned when a bundle has no resource under the requested name.
var ErrTemplateNotFound = errors.New("template not found")

// Resource names.
const (
	PersistenceXML           = "persistence-template.xml"
	ApplicationContext       = "applicationContext-template.xml"
	DatabaseProperties       = "database-template.properties"
	DatabaseDotComProperties = "database-dot-com-template.properties"
	AppEngineWebXML          = "appengine-web-template.xml"
	LoggingProperties        = "logging.properties"
	Dialects                 = "jpa-dialects.properties"
	RulesMatrix              = "configuration.yaml"
)

//go:embed resources
var embedded embed.FS

// Bundle serves named resources from a filesystem.
type Bundle struct {
	fsys fs.FS
	dir  string
}

// Default returns the bundle compiled into the binary.
func Default() *Bundle {
	return &Bundle{fsys: embedded, dir: "resources"}
}

// New returns a bundle reading resources from the root of fsys.
func New(fsys fs.FS) *Bundle {
	return &Bundle{fsys: fsys, dir: "."}
}

// Get returns the resource content, or ErrTemplateNotFound.
func (b *Bundle) Get(name string) ([]byte, error) {
	data, err := fs.ReadFile(b.fsys, path.Join(b.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return data, nil
}
