package pom

import (
	"strings"

	"persistence-setup/core/xmldoc"

	"github.com/beevik/etree"
)

// DefaultPluginGroupID is implied when a plugin declares no groupId.
const DefaultPluginGroupID = "org.apache.maven.plugins"

// Exclusion is a transitive dependency excluded from a Dependency.
type Exclusion struct {
	GroupID    string `yaml:"groupId" json:"group_id"`
	ArtifactID string `yaml:"artifactId" json:"artifact_id"`
}

// Dependency is a build dependency identified by groupId:artifactId.
type Dependency struct {
	GroupID    string      `yaml:"groupId" json:"group_id"`
	ArtifactID string      `yaml:"artifactId" json:"artifact_id"`
	Version    string      `yaml:"version" json:"version,omitempty"`
	Type       string      `yaml:"type" json:"type,omitempty"`
	Scope      string      `yaml:"scope" json:"scope,omitempty"`
	Classifier string      `yaml:"classifier" json:"classifier,omitempty"`
	Exclusions []Exclusion `yaml:"exclusions" json:"exclusions,omitempty"`
}

func (d Dependency) Key() string {
	return d.GroupID + ":" + d.ArtifactID
}

func (d Dependency) element() *etree.Element {
	e := etree.NewElement("dependency")
	xmldoc.TextElement(e, "groupId", d.GroupID)
	xmldoc.TextElement(e, "artifactId", d.ArtifactID)
	optionalText(e, "version", d.Version)
	optionalText(e, "type", d.Type)
	optionalText(e, "classifier", d.Classifier)
	optionalText(e, "scope", d.Scope)
	if len(d.Exclusions) > 0 {
		exclusions := e.CreateElement("exclusions")
		for _, x := range d.Exclusions {
			ex := exclusions.CreateElement("exclusion")
			xmldoc.TextElement(ex, "groupId", x.GroupID)
			xmldoc.TextElement(ex, "artifactId", x.ArtifactID)
		}
	}
	return e
}

func dependencyFrom(e *etree.Element) Dependency {
	d := Dependency{
		GroupID:    xmldoc.ChildText(e, "groupId"),
		ArtifactID: xmldoc.ChildText(e, "artifactId"),
		Version:    xmldoc.ChildText(e, "version"),
		Type:       xmldoc.ChildText(e, "type"),
		Scope:      xmldoc.ChildText(e, "scope"),
		Classifier: xmldoc.ChildText(e, "classifier"),
	}
	if exclusions := e.SelectElement("exclusions"); exclusions != nil {
		for _, ex := range exclusions.SelectElements("exclusion") {
			d.Exclusions = append(d.Exclusions, Exclusion{
				GroupID:    xmldoc.ChildText(ex, "groupId"),
				ArtifactID: xmldoc.ChildText(ex, "artifactId"),
			})
		}
	}
	return d
}

// Repository is a (plugin) repository identified by id.
type Repository struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name,omitempty"`
	URL  string `yaml:"url" json:"url"`
}

func (r Repository) Key() string {
	return r.ID
}

func (r Repository) element(tag string) *etree.Element {
	e := etree.NewElement(tag)
	xmldoc.TextElement(e, "id", r.ID)
	optionalText(e, "name", r.Name)
	xmldoc.TextElement(e, "url", r.URL)
	return e
}

func repositoryFrom(e *etree.Element) Repository {
	return Repository{
		ID:   xmldoc.ChildText(e, "id"),
		Name: xmldoc.ChildText(e, "name"),
		URL:  xmldoc.ChildText(e, "url"),
	}
}

// Plugin is a build plugin identified by groupId:artifactId.
// Configuration and Executions hold raw XML fragments copied into the plugin.
type Plugin struct {
	GroupID       string       `yaml:"groupId" json:"group_id"`
	ArtifactID    string       `yaml:"artifactId" json:"artifact_id"`
	Version       string       `yaml:"version" json:"version,omitempty"`
	Configuration string       `yaml:"configuration" json:"-"`
	Executions    string       `yaml:"executions" json:"-"`
	Dependencies  []Dependency `yaml:"dependencies" json:"-"`
}

func (p Plugin) Key() string {
	group := p.GroupID
	if group == "" {
		group = DefaultPluginGroupID
	}
	return group + ":" + p.ArtifactID
}

func (p Plugin) element() (*etree.Element, error) {
	e := etree.NewElement("plugin")
	group := p.GroupID
	if group == "" {
		group = DefaultPluginGroupID
	}
	xmldoc.TextElement(e, "groupId", group)
	xmldoc.TextElement(e, "artifactId", p.ArtifactID)
	optionalText(e, "version", p.Version)
	for _, fragment := range []string{p.Configuration, p.Executions} {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		doc, err := xmldoc.Parse([]byte(fragment))
		if err != nil {
			return nil, err
		}
		e.AddChild(doc.Root().Copy())
	}
	if len(p.Dependencies) > 0 {
		deps := e.CreateElement("dependencies")
		for _, d := range p.Dependencies {
			deps.AddChild(d.element())
		}
	}
	return e, nil
}

func pluginFrom(e *etree.Element) Plugin {
	return Plugin{
		GroupID:    xmldoc.ChildText(e, "groupId"),
		ArtifactID: xmldoc.ChildText(e, "artifactId"),
		Version:    xmldoc.ChildText(e, "version"),
	}
}

// Filter is a build filter file. Token is a descriptive label; the filter
// is identified by its file reference.
type Filter struct {
	Token string `yaml:"token" json:"token,omitempty"`
	Value string `yaml:"value" json:"value"`
}

func (f Filter) Key() string {
	return f.Value
}

// Resource is a build resource identified by directory, includes and excludes.
type Resource struct {
	Directory string   `yaml:"directory" json:"directory"`
	Filtering string   `yaml:"filtering" json:"filtering,omitempty"`
	Includes  []string `yaml:"includes" json:"includes,omitempty"`
	Excludes  []string `yaml:"excludes" json:"excludes,omitempty"`
}

func (r Resource) Key() string {
	return r.Directory + "|" + strings.Join(r.Includes, ",") + "|" + strings.Join(r.Excludes, ",")
}

func (r Resource) element() *etree.Element {
	e := etree.NewElement("resource")
	xmldoc.TextElement(e, "directory", r.Directory)
	optionalText(e, "filtering", r.Filtering)
	if len(r.Includes) > 0 {
		includes := e.CreateElement("includes")
		for _, i := range r.Includes {
			xmldoc.TextElement(includes, "include", i)
		}
	}
	if len(r.Excludes) > 0 {
		excludes := e.CreateElement("excludes")
		for _, x := range r.Excludes {
			xmldoc.TextElement(excludes, "exclude", x)
		}
	}
	return e
}

func resourceFrom(e *etree.Element) Resource {
	r := Resource{
		Directory: xmldoc.ChildText(e, "directory"),
		Filtering: xmldoc.ChildText(e, "filtering"),
	}
	if includes := e.SelectElement("includes"); includes != nil {
		for _, i := range includes.SelectElements("include") {
			r.Includes = append(r.Includes, strings.TrimSpace(i.Text()))
		}
	}
	if excludes := e.SelectElement("excludes"); excludes != nil {
		for _, x := range excludes.SelectElements("exclude") {
			r.Excludes = append(r.Excludes, strings.TrimSpace(x.Text()))
		}
	}
	return r
}

// Property is a build property identified by name.
type Property struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

func (p Property) Key() string {
	return p.Name
}

func optionalText(parent *etree.Element, tag, text string) {
	if text != "" {
		xmldoc.TextElement(parent, tag, text)
	}
}
