package jpa

import (
	"context"
	"slices"
	"strings"
	"testing"

	"persistence-setup/core/database"
	"persistence-setup/core/filemanager"
	"persistence-setup/core/journal"
	"persistence-setup/core/reconcile"
	"persistence-setup/core/xmldoc"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
	"persistence-setup/feature/jpa/pom"
	"persistence-setup/feature/jpa/propfile"
	"persistence-setup/feature/jpa/templates"
	"persistence-setup/feature/jpa/wiring"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const projectPOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
    <modelVersion>4.0.0</modelVersion>
    <groupId>com.example</groupId>
    <artifactId>petclinic</artifactId>
    <properties>
        <spring.version>3.0.5.RELEASE</spring.version>
    </properties>
    <dependencies>
        <dependency>
            <groupId>junit</groupId>
            <artifactId>junit</artifactId>
            <version>4.8.1</version>
            <scope>test</scope>
        </dependency>
    </dependencies>
    <build>
        <plugins>
            <plugin>
                <artifactId>maven-compiler-plugin</artifactId>
                <version>2.3.2</version>
            </plugin>
        </plugins>
    </build>
</project>
`

const root = "/project"

func newService(t *testing.T, store *journal.Store) (afero.Fs, *Service) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, root+"/"+layout.POM, []byte(projectPOM), 0o644))

	bundle := templates.Default()
	matrix, dialects, err := LoadResources(bundle, fs, "")
	require.NoError(t, err)

	return fs, NewService(filemanager.NewLocal(fs, root), bundle, matrix, dialects, store, zap.NewNop())
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, root+"/"+path)
	require.NoError(t, err)
	return ok
}

func loadPOM(t *testing.T, fs afero.Fs) *pom.Project {
	t.Helper()
	data, err := afero.ReadFile(fs, root+"/"+layout.POM)
	require.NoError(t, err)
	p, err := pom.Parse(data)
	require.NoError(t, err)
	return p
}

func dependencyKeys(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	return loadPOM(t, fs).Dependencies().Keys()
}

func databaseProperties(t *testing.T, fs afero.Fs) map[string]string {
	t.Helper()
	data, err := afero.ReadFile(fs, root+"/"+layout.DatabaseProperties)
	require.NoError(t, err)
	p, err := propfile.Parse(data)
	require.NoError(t, err)
	return p.Map()
}

func TestSetup_HibernateMySQL(t *testing.T) {
	fs, svc := newService(t, nil)

	result, err := svc.Setup(context.Background(), catalog.Request{
		Provider: catalog.Hibernate,
		Database: catalog.MySQL,
		UserName: "petclinic",
	}, false)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.True(t, result.Changed())
	assert.Contains(t, result.Warnings, propfile.DatabaseDetailsAdvisory)

	assert.True(t, exists(t, fs, layout.PersistenceXML))
	assert.True(t, exists(t, fs, layout.ApplicationContext))
	assert.False(t, exists(t, fs, layout.AppEngineWebXML))

	props := databaseProperties(t, fs)
	assert.Equal(t, "com.mysql.jdbc.Driver", props[propfile.DriverClassNameKey])
	assert.Equal(t, "jdbc:mysql://localhost:3306", props[propfile.URLKey])
	assert.Equal(t, "petclinic", props[propfile.UserNameKey])

	deps := dependencyKeys(t, fs)
	assert.Contains(t, deps, "junit:junit", "user dependencies are kept")
	assert.Contains(t, deps, "mysql:mysql-connector-java")
	assert.Contains(t, deps, "org.hibernate:hibernate-core")
	assert.Contains(t, deps, "org.springframework:spring-orm")
	assert.NotContains(t, deps, "postgresql:postgresql")
}

func TestSetup_Idempotent(t *testing.T) {
	fs, svc := newService(t, nil)
	req := catalog.Request{Provider: catalog.Hibernate, Database: catalog.MySQL}

	_, err := svc.Setup(context.Background(), req, false)
	require.NoError(t, err)
	before, err := afero.ReadFile(fs, root+"/"+layout.POM)
	require.NoError(t, err)

	again, err := svc.Setup(context.Background(), req, false)
	require.NoError(t, err)
	assert.Empty(t, again.Changes)
	assert.Empty(t, again.Warnings, "advisories only follow writes")
	for _, axis := range again.Axes {
		assert.Zero(t, axis.Added, axis.Axis)
		assert.Zero(t, axis.Removed, axis.Axis)
	}

	after, err := afero.ReadFile(fs, root+"/"+layout.POM)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSetup_SwitchDatabase(t *testing.T) {
	fs, svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Setup(ctx, catalog.Request{Provider: catalog.Hibernate, Database: catalog.MySQL}, false)
	require.NoError(t, err)

	result, err := svc.Setup(ctx, catalog.Request{Provider: catalog.Hibernate, Database: catalog.Postgres, DatabaseName: "clinic"}, false)
	require.NoError(t, err)

	deps := dependencyKeys(t, fs)
	assert.Contains(t, deps, "postgresql:postgresql")
	assert.NotContains(t, deps, "mysql:mysql-connector-java")
	assert.Contains(t, deps, "commons-dbcp:commons-dbcp", "shared pool dependency stays")
	assert.Contains(t, deps, "junit:junit")

	require.NotEmpty(t, result.Axes)
	assert.Equal(t, AxisSummary{
		Axis:    pom.AxisDependencies,
		Added:   1,
		Removed: 1,
		Actions: []reconcile.Action{
			{Type: reconcile.ActionRemove, Key: "mysql:mysql-connector-java"},
			{Type: reconcile.ActionAdd, Key: "postgresql:postgresql"},
		},
	}, result.Axes[0])

	props := databaseProperties(t, fs)
	assert.Equal(t, "org.postgresql.Driver", props[propfile.DriverClassNameKey])
	assert.Equal(t, "jdbc:postgresql://localhost:5432/clinic", props[propfile.URLKey])
}

func TestSetup_JNDI(t *testing.T) {
	fs, svc := newService(t, nil)

	_, err := svc.Setup(context.Background(), catalog.Request{
		Provider: catalog.Hibernate,
		Database: catalog.MySQL,
		JNDIName: "jdbc/petclinic",
	}, false)
	require.NoError(t, err)

	assert.False(t, exists(t, fs, layout.DatabaseProperties), "JNDI data sources skip database.properties")

	fm := filemanager.NewLocal(fs, root)
	doc, err := xmldoc.Load(context.Background(), fm, layout.ApplicationContext, nil)
	require.NoError(t, err)
	lookups := xmldoc.ChildrenWithAttr(doc.Root(), "jndi-lookup", "id", wiring.DataSourceID)
	require.Len(t, lookups, 1)
	assert.Equal(t, "jdbc/petclinic", lookups[0].SelectAttrValue("jndi-name", ""))
	assert.Empty(t, xmldoc.ChildrenWithAttr(doc.Root(), "bean", "id", wiring.DataSourceID))
}

func TestSetup_DataNucleusAppEngine(t *testing.T) {
	fs, svc := newService(t, nil)

	result, err := svc.Setup(context.Background(), catalog.Request{
		Provider:      catalog.DataNucleus,
		Database:      catalog.GoogleAppEngine,
		ApplicationID: "clinic-app",
	}, false)
	require.NoError(t, err)

	assert.False(t, exists(t, fs, layout.DatabaseProperties))
	assert.True(t, exists(t, fs, layout.AppEngineWebXML))
	assert.True(t, exists(t, fs, layout.LoggingProperties))
	assert.Contains(t, result.Warnings, "Please review the application id in "+layout.AppEngineWebXML+".")

	fm := filemanager.NewLocal(fs, root)
	doc, err := xmldoc.Load(context.Background(), fm, layout.AppEngineWebXML, nil)
	require.NoError(t, err)
	assert.Equal(t, "clinic-app", xmldoc.ChildText(doc.Root(), "application"))

	project := loadPOM(t, fs)
	deps := project.Dependencies().Keys()
	assert.Contains(t, deps, "com.google.appengine:appengine-api-1.0-sdk")
	assert.Contains(t, deps, "org.datanucleus:datanucleus-core")
	assert.NotContains(t, deps, "org.hibernate:hibernate-core")
	assert.NotNil(t, project.Plugin("maven-gae-plugin"))

	version, ok := project.Property("gae.version")
	assert.True(t, ok)
	assert.Equal(t, "1.6.2", version)
}

const gwtPlugin = `
            <plugin>
                <groupId>org.codehaus.mojo</groupId>
                <artifactId>gwt-maven-plugin</artifactId>
                <version>2.2.0</version>
            </plugin>`

const sdkDependency = `
        <dependency>
            <groupId>com.google.appengine</groupId>
            <artifactId>appengine-api-1.0-sdk</artifactId>
            <version>1.4.3</version>
        </dependency>`

func TestSetup_GWTKeepsManagedSDK(t *testing.T) {
	const sdk = "com.google.appengine:appengine-api-1.0-sdk"
	tests := []struct {
		name    string
		withSDK bool
	}{
		{"SDKDeclared", true},
		{"SDKAbsent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, svc := newService(t, nil)
			ctx := context.Background()

			gwtPOM := strings.Replace(projectPOM, "<plugins>", "<plugins>"+gwtPlugin, 1)
			if tt.withSDK {
				gwtPOM = strings.Replace(gwtPOM, "<dependencies>", "<dependencies>"+sdkDependency, 1)
			}
			require.NoError(t, afero.WriteFile(fs, root+"/"+layout.POM, []byte(gwtPOM), 0o644))
			require.True(t, loadPOM(t, fs).Metadata().GWTEnabled)

			_, err := svc.Setup(ctx, catalog.Request{Provider: catalog.DataNucleus, Database: catalog.GoogleAppEngine}, false)
			require.NoError(t, err)
			deps := dependencyKeys(t, fs)
			assert.Equal(t, tt.withSDK, slices.Contains(deps, sdk), "managed SDK is left as declared")
			assert.Contains(t, deps, "com.google.appengine:appengine-api-labs")
			assert.Contains(t, deps, "com.google.appengine.orm:datanucleus-appengine")

			_, err = svc.Setup(ctx, catalog.Request{Provider: catalog.Hibernate, Database: catalog.MySQL}, false)
			require.NoError(t, err)
			deps = dependencyKeys(t, fs)
			assert.Equal(t, tt.withSDK, slices.Contains(deps, sdk), "managed SDK is left as declared")
			assert.NotContains(t, deps, "com.google.appengine:appengine-api-labs")
			assert.NotContains(t, deps, "com.google.appengine:appengine-api-stubs")
			assert.NotContains(t, deps, "com.google.appengine:appengine-testing")
			assert.NotContains(t, deps, "com.google.appengine.orm:datanucleus-appengine")
			assert.Contains(t, deps, "mysql:mysql-connector-java")
			assert.NotNil(t, loadPOM(t, fs).Plugin(pom.GWTPluginArtifactID))
		})
	}
}

func TestSetup_RejectsUnitOutsideProject(t *testing.T) {
	fs, svc := newService(t, nil)
	require.NoError(t, afero.WriteFile(fs, "/outside/secret.properties", []byte("token=abc\n"), 0o644))

	_, err := svc.Setup(context.Background(), catalog.Request{
		Provider:        catalog.Hibernate,
		Database:        catalog.MySQL,
		PersistenceUnit: "../../../../outside/secret",
	}, false)
	assert.ErrorIs(t, err, catalog.ErrInvalidPersistenceUnit)

	data, err := afero.ReadFile(fs, "/outside/secret.properties")
	require.NoError(t, err)
	assert.Equal(t, "token=abc\n", string(data))
	assert.False(t, exists(t, fs, layout.PersistenceXML), "nothing is written for a rejected selection")
}

func TestSetup_DryRun(t *testing.T) {
	fs, svc := newService(t, nil)
	before, err := afero.ReadFile(fs, root+"/"+layout.POM)
	require.NoError(t, err)

	result, err := svc.Setup(context.Background(), catalog.Request{Provider: catalog.Hibernate, Database: catalog.MySQL}, true)
	require.NoError(t, err)
	assert.True(t, result.DryRun)

	paths := map[string]filemanager.Action{}
	for _, c := range result.Changes {
		paths[c.Path] = c.Action
	}
	assert.Equal(t, filemanager.ActionCreated, paths[layout.PersistenceXML])
	assert.Equal(t, filemanager.ActionUpdated, paths[layout.POM])

	assert.False(t, exists(t, fs, layout.PersistenceXML))
	after, err := afero.ReadFile(fs, root+"/"+layout.POM)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     catalog.Request
		noPOM   bool
		wantErr error
	}{
		{"UnknownProvider", catalog.Request{Provider: "TOPLINK", Database: catalog.MySQL}, false, catalog.ErrUnknownProvider},
		{"UnknownDatabase", catalog.Request{Provider: catalog.Hibernate, Database: "ACCESS"}, false, catalog.ErrUnknownDatabase},
		{"NoProject", catalog.Request{Provider: catalog.Hibernate, Database: catalog.MySQL}, true, pom.ErrNoProject},
		{"MissingDialect", catalog.Request{Provider: catalog.Hibernate, Database: catalog.GoogleAppEngine}, false, catalog.ErrMissingDialect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, svc := newService(t, nil)
			if tt.noPOM {
				require.NoError(t, fs.Remove(root+"/"+layout.POM))
			}
			_, err := svc.Setup(context.Background(), tt.req, false)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStatusAndDatabaseProperties(t *testing.T) {
	fs, svc := newService(t, nil)
	ctx := context.Background()

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{Installed: false, InstallationPossible: true}, st)

	_, err = svc.Setup(ctx, catalog.Request{Provider: catalog.Hibernate, Database: catalog.MySQL, Password: "secret"}, false)
	require.NoError(t, err)

	installed, err := svc.IsInstalled(ctx)
	require.NoError(t, err)
	assert.True(t, installed)
	possible, err := svc.IsInstallationPossible(ctx)
	require.NoError(t, err)
	assert.False(t, possible)

	lines, err := svc.DatabaseProperties(ctx)
	require.NoError(t, err)
	assert.Contains(t, lines, propfile.PasswordKey+" = secret")

	require.NoError(t, fs.Remove(root+"/"+layout.POM))
	st, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{}, st)
}

func TestHistory(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	store := journal.NewStore(db, zap.NewNop())
	require.NoError(t, store.Migrate())

	_, svc := newService(t, store)
	result, err := svc.Setup(context.Background(), catalog.Request{Provider: catalog.Hibernate, Database: catalog.MySQL}, false)
	require.NoError(t, err)

	entries, err := svc.History(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, entries, len(result.Changes))
	for _, e := range entries {
		assert.Equal(t, result.RunID, e.RunID)
		assert.Equal(t, catalog.MySQL, e.Database)
	}

	_, noJournal := newService(t, nil)
	_, err = noJournal.History(context.Background(), 10)
	assert.ErrorIs(t, err, ErrJournalDisabled)
}
