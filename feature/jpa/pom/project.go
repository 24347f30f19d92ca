package pom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"persistence-setup/core/filemanager"
	"persistence-setup/core/reconcile"
	"persistence-setup/core/xmldoc"
	"persistence-setup/feature/jpa/layout"

	"github.com/beevik/etree"
)

// ErrNoProject is returned when the project has no build descriptor.
var ErrNoProject = errors.New("no project build descriptor found")

// GWTPluginArtifactID marks projects that compile a GWT front-end.
const GWTPluginArtifactID = "gwt-maven-plugin"

// Metadata holds the project facts the setup depends on.
type Metadata struct {
	Name       string `json:"name"`
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	GWTEnabled bool   `json:"gwt_enabled"`
}

// Project is an editable build descriptor.
type Project struct {
	doc *xmldoc.Document
}

// Load reads the build descriptor through fm.
func Load(ctx context.Context, fm filemanager.FileManager) (*Project, error) {
	doc, err := xmldoc.Load(ctx, fm, layout.POM, nil)
	if err != nil {
		if errors.Is(err, filemanager.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoProject, layout.POM)
		}
		return nil, err
	}
	return &Project{doc: doc}, nil
}

// Parse builds a project from raw descriptor bytes.
func Parse(data []byte) (*Project, error) {
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Project{doc: doc}, nil
}

func (p *Project) root() *etree.Element {
	return p.doc.Root()
}

// Metadata returns the project name and GWT flag. The name falls back to the artifactId.
func (p *Project) Metadata() Metadata {
	m := Metadata{
		Name:       xmldoc.ChildText(p.root(), "name"),
		GroupID:    xmldoc.ChildText(p.root(), "groupId"),
		ArtifactID: xmldoc.ChildText(p.root(), "artifactId"),
		GWTEnabled: p.Plugin(GWTPluginArtifactID) != nil,
	}
	if m.Name == "" {
		m.Name = m.ArtifactID
	}
	return m
}

// Save writes the descriptor when its canonical form changed.
func (p *Project) Save(ctx context.Context, fm filemanager.FileManager, description string) (bool, error) {
	return p.doc.Save(ctx, fm, layout.POM, description)
}

// Bytes returns the canonical serialization of the descriptor.
func (p *Project) Bytes() ([]byte, error) {
	return p.doc.Bytes()
}

// container walks path from the project root, creating missing elements when create is set.
func (p *Project) container(create bool, path ...string) *etree.Element {
	e := p.root()
	for _, tag := range path {
		if create {
			e = xmldoc.EnsureChild(e, tag)
		} else if e = e.SelectElement(tag); e == nil {
			return nil
		}
	}
	return e
}

func (p *Project) elements(tag string, path ...string) []*etree.Element {
	c := p.container(false, path...)
	if c == nil {
		return nil
	}
	return c.SelectElements(tag)
}

// Dependencies returns the declared project dependencies.
func (p *Project) Dependencies() *reconcile.Set[Dependency] {
	out := reconcile.NewSet[Dependency]()
	for _, e := range p.elements("dependency", "dependencies") {
		out.Add(dependencyFrom(e))
	}
	return out
}

// Repositories returns the declared repositories.
func (p *Project) Repositories() *reconcile.Set[Repository] {
	out := reconcile.NewSet[Repository]()
	for _, e := range p.elements("repository", "repositories") {
		out.Add(repositoryFrom(e))
	}
	return out
}

// PluginRepositories returns the declared plugin repositories.
func (p *Project) PluginRepositories() *reconcile.Set[Repository] {
	out := reconcile.NewSet[Repository]()
	for _, e := range p.elements("pluginRepository", "pluginRepositories") {
		out.Add(repositoryFrom(e))
	}
	return out
}

// Plugins returns the declared build plugins.
func (p *Project) Plugins() *reconcile.Set[Plugin] {
	out := reconcile.NewSet[Plugin]()
	for _, e := range p.elements("plugin", "build", "plugins") {
		out.Add(pluginFrom(e))
	}
	return out
}

// Filters returns the declared build filters.
func (p *Project) Filters() *reconcile.Set[Filter] {
	out := reconcile.NewSet[Filter]()
	for _, e := range p.elements("filter", "build", "filters") {
		out.Add(Filter{Value: strings.TrimSpace(e.Text())})
	}
	return out
}

// Resources returns the declared build resources.
func (p *Project) Resources() *reconcile.Set[Resource] {
	out := reconcile.NewSet[Resource]()
	for _, e := range p.elements("resource", "build", "resources") {
		out.Add(resourceFrom(e))
	}
	return out
}

// Plugin returns the plugin element with the given artifactId, or nil.
func (p *Project) Plugin(artifactID string) *etree.Element {
	for _, e := range p.elements("plugin", "build", "plugins") {
		if xmldoc.ChildText(e, "artifactId") == artifactID {
			return e
		}
	}
	return nil
}

// AddDependency appends d unless a dependency with the same key is declared.
func (p *Project) AddDependency(d Dependency) bool {
	if p.Dependencies().Has(d) {
		return false
	}
	p.container(true, "dependencies").AddChild(d.element())
	return true
}

// RemoveDependency removes every declaration sharing d's key.
func (p *Project) RemoveDependency(d Dependency) bool {
	return p.removeKeyed("dependency", d.Key(), func(e *etree.Element) string {
		return dependencyFrom(e).Key()
	}, "dependencies")
}

// UpdateDependencyScope sets the scope of the declared dependency sharing d's key.
// An empty scope removes the element. Reports whether the descriptor changed.
func (p *Project) UpdateDependencyScope(d Dependency, scope string) bool {
	changed := false
	for _, e := range p.elements("dependency", "dependencies") {
		if dependencyFrom(e).Key() != d.Key() {
			continue
		}
		current := e.SelectElement("scope")
		switch {
		case scope == "" && current != nil:
			e.RemoveChild(current)
			changed = true
		case scope != "" && current == nil:
			xmldoc.TextElement(e, "scope", scope)
			changed = true
		case scope != "" && strings.TrimSpace(current.Text()) != scope:
			current.SetText(scope)
			changed = true
		}
	}
	return changed
}

// AddRepository appends r unless a repository with the same id is declared.
func (p *Project) AddRepository(r Repository) bool {
	if p.Repositories().Has(r) {
		return false
	}
	p.container(true, "repositories").AddChild(r.element("repository"))
	return true
}

// RemoveRepository removes every repository with r's id.
func (p *Project) RemoveRepository(r Repository) bool {
	return p.removeKeyed("repository", r.Key(), func(e *etree.Element) string {
		return repositoryFrom(e).Key()
	}, "repositories")
}

// AddPluginRepository appends r unless a plugin repository with the same id is declared.
func (p *Project) AddPluginRepository(r Repository) bool {
	if p.PluginRepositories().Has(r) {
		return false
	}
	p.container(true, "pluginRepositories").AddChild(r.element("pluginRepository"))
	return true
}

// RemovePluginRepository removes every plugin repository with r's id.
func (p *Project) RemovePluginRepository(r Repository) bool {
	return p.removeKeyed("pluginRepository", r.Key(), func(e *etree.Element) string {
		return repositoryFrom(e).Key()
	}, "pluginRepositories")
}

// AddPlugin appends pl unless a plugin with the same key is declared.
func (p *Project) AddPlugin(pl Plugin) (bool, error) {
	if p.Plugins().Has(pl) {
		return false, nil
	}
	e, err := pl.element()
	if err != nil {
		return false, fmt.Errorf("failed to build plugin %s: %w", pl.Key(), err)
	}
	p.container(true, "build", "plugins").AddChild(e)
	return true, nil
}

// RemovePlugin removes every plugin sharing pl's key.
func (p *Project) RemovePlugin(pl Plugin) bool {
	return p.removeKeyed("plugin", pl.Key(), func(e *etree.Element) string {
		return pluginFrom(e).Key()
	}, "build", "plugins")
}

// AddFilter appends f unless the filter is declared.
func (p *Project) AddFilter(f Filter) bool {
	if p.Filters().Has(f) {
		return false
	}
	xmldoc.TextElement(p.container(true, "build", "filters"), "filter", f.Value)
	return true
}

// RemoveFilter removes every filter referencing f's file.
func (p *Project) RemoveFilter(f Filter) bool {
	return p.removeKeyed("filter", f.Key(), func(e *etree.Element) string {
		return strings.TrimSpace(e.Text())
	}, "build", "filters")
}

// AddResource appends r unless an identical resource is declared.
func (p *Project) AddResource(r Resource) bool {
	if p.Resources().Has(r) {
		return false
	}
	p.container(true, "build", "resources").AddChild(r.element())
	return true
}

// RemoveResource removes every resource sharing r's key.
func (p *Project) RemoveResource(r Resource) bool {
	return p.removeKeyed("resource", r.Key(), func(e *etree.Element) string {
		return resourceFrom(e).Key()
	}, "build", "resources")
}

// AddProperty sets a build property, overwriting a differing value.
// Reports whether the descriptor changed.
func (p *Project) AddProperty(prop Property) bool {
	if current, ok := p.Property(prop.Name); ok && current == prop.Value {
		return false
	}
	xmldoc.EnsureChild(p.container(true, "properties"), prop.Name).SetText(prop.Value)
	return true
}

// Property returns the value of a build property.
func (p *Project) Property(name string) (string, bool) {
	properties := p.container(false, "properties")
	if properties == nil {
		return "", false
	}
	e := properties.SelectElement(name)
	if e == nil {
		return "", false
	}
	return strings.TrimSpace(e.Text()), true
}

func (p *Project) removeKeyed(tag, key string, keyOf func(*etree.Element) string, path ...string) bool {
	var matches []*etree.Element
	for _, e := range p.elements(tag, path...) {
		if keyOf(e) == key {
			matches = append(matches, e)
		}
	}
	return xmldoc.RemoveAll(matches...)
}
