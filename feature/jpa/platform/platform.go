package platform

import (
	"context"
	"fmt"
	"strings"

	"persistence-setup/core/filemanager"
	"persistence-setup/core/utils"
	"persistence-setup/core/xmldoc"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
	"persistence-setup/feature/jpa/pom"
	"persistence-setup/feature/jpa/templates"

	"github.com/beevik/etree"
)

// Build plugin fragments owned by the managed-hosting platform.
const (
	EclipsePluginArtifactID     = "maven-eclipse-plugin"
	EnhancerBuildCommand        = "com.google.appengine.eclipse.core.enhancerbuilder"
	ProjectNature               = "com.google.appengine.eclipse.core.gaeNature"
	DataNucleusPluginArtifactID = "maven-datanucleus-plugin"
	MappingExcludes             = "**/CustomRequestFactoryServlet.class, **/GaeAuthFilter.class"

	// ProvidedScope is the scope of the JSTL implementation on the platform.
	ProvidedScope = "provided"
)

// JSTLDependency is the framework dependency the platform provides at runtime.
var JSTLDependency = pom.Dependency{GroupID: "org.glassfish.web", ArtifactID: "jstl-impl"}

// Manager keeps the managed-hosting deployment files and build fragments in
// line with the selected database.
type Manager struct {
	fm     filemanager.FileManager
	bundle *templates.Bundle
}

// New creates a Manager.
func New(fm filemanager.FileManager, bundle *templates.Bundle) *Manager {
	return &Manager{fm: fm, bundle: bundle}
}

// UpdateDescriptor writes the deployment descriptor and logging configuration
// for the managed-hosting database and deletes them for any other database.
func (m *Manager) UpdateDescriptor(ctx context.Context, sel catalog.Selection, projectName string) ([]string, error) {
	if !sel.Database.IsManagedHosting() {
		reason := "database is " + sel.Database.ID
		if _, err := m.fm.Delete(ctx, layout.AppEngineWebXML, reason); err != nil {
			return nil, err
		}
		_, err := m.fm.Delete(ctx, layout.LoggingProperties, reason)
		return nil, err
	}

	doc, err := xmldoc.Load(ctx, m.fm, layout.AppEngineWebXML, func() ([]byte, error) {
		return m.bundle.Get(templates.AppEngineWebXML)
	})
	if err != nil {
		return nil, err
	}

	application := doc.Root().SelectElement("application")
	if application == nil {
		return nil, fmt.Errorf("%w: application in %s", xmldoc.ErrMissingElement, layout.AppEngineWebXML)
	}

	var advisories []string
	id := utils.DefaultIfEmpty(sel.ApplicationID, projectName)
	if strings.TrimSpace(application.Text()) != id || !doc.Existed {
		application.SetText(id)
		written, err := doc.Save(ctx, m.fm, layout.AppEngineWebXML, "application "+id)
		if err != nil {
			return nil, err
		}
		if written {
			advisories = append(advisories, "Please review the application id in "+layout.AppEngineWebXML+".")
		}
	}

	exists, err := m.fm.Exists(ctx, layout.LoggingProperties)
	if err != nil {
		return nil, err
	}
	if !exists {
		data, err := m.bundle.Get(templates.LoggingProperties)
		if err != nil {
			return nil, err
		}
		if _, err := m.fm.Write(ctx, layout.LoggingProperties, data, "platform logging configuration"); err != nil {
			return nil, err
		}
	}
	return advisories, nil
}

// Toggle adds (enable) or removes the platform build fragments and sets the
// JSTL implementation scope, saving the build descriptor once if anything changed.
func (m *Manager) Toggle(ctx context.Context, enable bool) error {
	project, err := pom.Load(ctx, m.fm)
	if err != nil {
		return err
	}

	var changes []string
	eclipse, err := EclipseFragment(project, enable)
	if err != nil {
		return err
	}
	changes = append(changes, eclipse...)
	if change := EnhancerFragment(project, enable); change != "" {
		changes = append(changes, change)
	}

	scope := ""
	if enable {
		scope = ProvidedScope
	}
	if project.UpdateDependencyScope(JSTLDependency, scope) {
		changes = append(changes, "set "+JSTLDependency.Key()+" scope to "+utils.DefaultIfEmpty(scope, "default"))
	}

	if len(changes) == 0 {
		return nil
	}
	_, err = project.Save(ctx, m.fm, strings.Join(changes, "; "))
	return err
}

// EclipseFragment toggles the platform build command and project nature of the
// IDE plugin. Projects without the plugin are skipped. When enabling, the
// plugin must declare both containers.
func EclipseFragment(project *pom.Project, enable bool) ([]string, error) {
	plugin := project.Plugin(EclipsePluginArtifactID)
	if plugin == nil {
		return nil, nil
	}
	var configuration, commands, natures *etree.Element
	if configuration = plugin.SelectElement("configuration"); configuration != nil {
		commands = configuration.SelectElement("additionalBuildcommands")
		natures = configuration.SelectElement("additionalProjectnatures")
	}

	var changes []string
	if commands == nil {
		if enable {
			return nil, fmt.Errorf("%w: additionalBuildcommands of %s", xmldoc.ErrMissingElement, EclipsePluginArtifactID)
		}
	} else {
		var command *etree.Element
		for _, c := range commands.SelectElements("buildCommand") {
			if xmldoc.ChildText(c, "name") == EnhancerBuildCommand {
				command = c
				break
			}
		}
		switch {
		case enable && command == nil:
			xmldoc.TextElement(commands.CreateElement("buildCommand"), "name", EnhancerBuildCommand)
			changes = append(changes, "added platform buildCommand to "+EclipsePluginArtifactID)
		case !enable && command != nil:
			commands.RemoveChild(command)
			changes = append(changes, "removed platform buildCommand from "+EclipsePluginArtifactID)
		}
	}

	if natures == nil {
		if enable {
			return nil, fmt.Errorf("%w: additionalProjectnatures of %s", xmldoc.ErrMissingElement, EclipsePluginArtifactID)
		}
		return changes, nil
	}
	nature := xmldoc.ChildWithText(natures, "projectnature", ProjectNature)
	switch {
	case enable && nature == nil:
		xmldoc.TextElement(natures, "projectnature", ProjectNature)
		changes = append(changes, "added platform projectnature to "+EclipsePluginArtifactID)
	case !enable && nature != nil:
		natures.RemoveChild(nature)
		changes = append(changes, "removed platform projectnature from "+EclipsePluginArtifactID)
	}
	return changes, nil
}

// EnhancerFragment toggles the platform mapping excludes of the enhancer plugin.
// Plugins without a configuration are skipped. It returns a description of
// the change, or "" when nothing changed.
func EnhancerFragment(project *pom.Project, enable bool) string {
	plugin := project.Plugin(DataNucleusPluginArtifactID)
	if plugin == nil {
		return ""
	}
	configuration := plugin.SelectElement("configuration")
	if configuration == nil {
		return ""
	}

	excludes := configuration.SelectElement("mappingExcludes")
	switch {
	case enable && excludes == nil:
		xmldoc.TextElement(configuration, "mappingExcludes", MappingExcludes)
		return "added platform mappingExcludes to " + DataNucleusPluginArtifactID
	case !enable && excludes != nil:
		configuration.RemoveChild(excludes)
		return "removed platform mappingExcludes from " + DataNucleusPluginArtifactID
	}
	return ""
}
