package platform

import (
	"context"
	"testing"

	"persistence-setup/core/filemanager"
	"persistence-setup/core/xmldoc"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
	"persistence-setup/feature/jpa/pom"
	"persistence-setup/feature/jpa/templates"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gaePOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
    <artifactId>petclinic</artifactId>
    <dependencies>
        <dependency>
            <groupId>org.glassfish.web</groupId>
            <artifactId>jstl-impl</artifactId>
            <version>1.2</version>
        </dependency>
    </dependencies>
    <build>
        <plugins>
            <plugin>
                <groupId>org.apache.maven.plugins</groupId>
                <artifactId>maven-eclipse-plugin</artifactId>
                <configuration>
                    <additionalBuildcommands>
                        <buildCommand>
                            <name>org.eclipse.ajdt.core.ajbuilder</name>
                        </buildCommand>
                    </additionalBuildcommands>
                    <additionalProjectnatures>
                        <projectnature>org.eclipse.ajdt.ui.ajnature</projectnature>
                    </additionalProjectnatures>
                </configuration>
            </plugin>
            <plugin>
                <groupId>org.datanucleus</groupId>
                <artifactId>maven-datanucleus-plugin</artifactId>
                <configuration>
                    <fork>false</fork>
                </configuration>
            </plugin>
        </plugins>
    </build>
</project>
`

func setup(t *testing.T, pomXML string) (afero.Fs, *filemanager.Recorder, *Manager) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if pomXML != "" {
		require.NoError(t, afero.WriteFile(fs, "/project/"+layout.POM, []byte(pomXML), 0o644))
	}
	rec := filemanager.NewRecorder(filemanager.NewLocal(fs, "/project"), false, nil)
	return fs, rec, New(rec, templates.Default())
}

func resolve(t *testing.T, req catalog.Request) catalog.Selection {
	t.Helper()
	sel, err := req.Resolve()
	require.NoError(t, err)
	return sel
}

func canonical(t *testing.T, fs afero.Fs) string {
	t.Helper()
	data, err := afero.ReadFile(fs, "/project/"+layout.POM)
	require.NoError(t, err)
	p, err := pom.Parse(data)
	require.NoError(t, err)
	out, err := p.Bytes()
	require.NoError(t, err)
	return string(out)
}

func TestUpdateDescriptor_Enable(t *testing.T) {
	fs, rec, m := setup(t, "")
	ctx := context.Background()
	sel := resolve(t, catalog.Request{Provider: catalog.DataNucleus, Database: catalog.GoogleAppEngine, ApplicationID: "clinic-prod"})

	advisories, err := m.UpdateDescriptor(ctx, sel, "petclinic")
	require.NoError(t, err)
	assert.Len(t, advisories, 1)

	doc, err := xmldoc.Load(ctx, rec, layout.AppEngineWebXML, nil)
	require.NoError(t, err)
	assert.Equal(t, "clinic-prod", xmldoc.ChildText(doc.Root(), "application"))

	ok, err := afero.Exists(fs, "/project/"+layout.LoggingProperties)
	require.NoError(t, err)
	assert.True(t, ok)

	count := len(rec.Changes())
	advisories, err = m.UpdateDescriptor(ctx, sel, "petclinic")
	require.NoError(t, err)
	assert.Empty(t, advisories)
	assert.Len(t, rec.Changes(), count, "second run writes nothing")
}

func TestUpdateDescriptor_ProjectNameDefault(t *testing.T) {
	_, rec, m := setup(t, "")
	ctx := context.Background()
	_, err := m.UpdateDescriptor(ctx, resolve(t, catalog.Request{Provider: catalog.DataNucleus, Database: catalog.GoogleAppEngine}), "petclinic")
	require.NoError(t, err)

	doc, err := xmldoc.Load(ctx, rec, layout.AppEngineWebXML, nil)
	require.NoError(t, err)
	assert.Equal(t, "petclinic", xmldoc.ChildText(doc.Root(), "application"))
}

func TestUpdateDescriptor_MissingApplication(t *testing.T) {
	fs, _, m := setup(t, "")
	require.NoError(t, afero.WriteFile(fs, "/project/"+layout.AppEngineWebXML, []byte(`<appengine-web-app xmlns="http://appengine.google.com/ns/1.0"/>`), 0o644))

	_, err := m.UpdateDescriptor(context.Background(), resolve(t, catalog.Request{Provider: catalog.DataNucleus, Database: catalog.GoogleAppEngine}), "petclinic")
	assert.ErrorIs(t, err, xmldoc.ErrMissingElement)
}

func TestUpdateDescriptor_DisableDeletes(t *testing.T) {
	fs, rec, m := setup(t, "")
	ctx := context.Background()
	_, err := m.UpdateDescriptor(ctx, resolve(t, catalog.Request{Provider: catalog.DataNucleus, Database: catalog.GoogleAppEngine}), "petclinic")
	require.NoError(t, err)

	_, err = m.UpdateDescriptor(ctx, resolve(t, catalog.Request{Provider: catalog.Hibernate, Database: catalog.Postgres}), "petclinic")
	require.NoError(t, err)

	for _, path := range []string{layout.AppEngineWebXML, layout.LoggingProperties} {
		ok, err := afero.Exists(fs, "/project/"+path)
		require.NoError(t, err)
		assert.False(t, ok, path)
	}
	changes := rec.Changes()
	assert.Equal(t, filemanager.ActionDeleted, changes[len(changes)-1].Action)
	assert.Equal(t, "database is POSTGRES", changes[len(changes)-1].Description)
}

func TestToggle_Symmetry(t *testing.T) {
	fs, _, m := setup(t, gaePOM)
	ctx := context.Background()
	before := canonical(t, fs)

	require.NoError(t, m.Toggle(ctx, true))
	p, err := pom.Load(ctx, filemanager.NewLocal(fs, "/project"))
	require.NoError(t, err)

	eclipse := p.Plugin(EclipsePluginArtifactID).SelectElement("configuration")
	assert.NotNil(t, xmldoc.ChildWithText(eclipse.SelectElement("additionalProjectnatures"), "projectnature", ProjectNature))
	assert.Len(t, eclipse.SelectElement("additionalBuildcommands").SelectElements("buildCommand"), 2)
	assert.Equal(t, MappingExcludes, xmldoc.ChildText(p.Plugin(DataNucleusPluginArtifactID).SelectElement("configuration"), "mappingExcludes"))
	jstl, _ := p.Dependencies().Get(JSTLDependency.Key())
	assert.Equal(t, ProvidedScope, jstl.Scope)

	require.NoError(t, m.Toggle(ctx, true), "enabling twice is a no-op")

	require.NoError(t, m.Toggle(ctx, false))
	assert.Equal(t, before, canonical(t, fs))
}

func TestToggle_NoChangeNoWrite(t *testing.T) {
	_, rec, m := setup(t, gaePOM)
	require.NoError(t, m.Toggle(context.Background(), false))
	assert.Empty(t, rec.Changes())
}

func TestToggle_MissingContainers(t *testing.T) {
	pomXML := `<project>
    <build>
        <plugins>
            <plugin>
                <artifactId>maven-eclipse-plugin</artifactId>
            </plugin>
        </plugins>
    </build>
</project>`
	_, _, m := setup(t, pomXML)
	assert.ErrorIs(t, m.Toggle(context.Background(), true), xmldoc.ErrMissingElement)
	assert.NoError(t, m.Toggle(context.Background(), false))
}

func TestToggle_NoProject(t *testing.T) {
	_, _, m := setup(t, "")
	assert.ErrorIs(t, m.Toggle(context.Background(), false), pom.ErrNoProject)
}
