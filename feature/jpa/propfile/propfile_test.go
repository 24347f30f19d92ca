package propfile

import (
	"context"
	"strings"
	"testing"
	"time"

	"persistence-setup/core/filemanager"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
	"persistence-setup/feature/jpa/templates"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (afero.Fs, *Reconciler) {
	t.Helper()
	fs := afero.NewMemMapFs()
	r := New(filemanager.NewLocal(fs, "/project"), templates.Default())
	r.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return fs, r
}

func resolve(t *testing.T, req catalog.Request) catalog.Selection {
	t.Helper()
	sel, err := req.Resolve()
	require.NoError(t, err)
	return sel
}

func read(t *testing.T, fs afero.Fs, path string) map[string]string {
	t.Helper()
	data, err := afero.ReadFile(fs, "/project/"+path)
	require.NoError(t, err)
	p, err := Parse(data)
	require.NoError(t, err)
	return p.Map()
}

func TestReconcile(t *testing.T) {
	fs, r := setup(t)
	ctx := context.Background()
	require.NoError(t, afero.WriteFile(fs, "/project/app.properties", []byte("keep=me\nurl=old\n"), 0o644))

	written, err := r.Reconcile(ctx, "app.properties", []Entry{{"url", "new"}}, "", "test")
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, map[string]string{"keep": "me", "url": "new"}, read(t, fs, "app.properties"))

	before, err := afero.ReadFile(fs, "/project/app.properties")
	require.NoError(t, err)
	assert.Contains(t, string(before), "#Updated at ")

	r.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	written, err = r.Reconcile(ctx, "app.properties", []Entry{{"url", " new "}}, "", "test")
	require.NoError(t, err)
	assert.False(t, written, "trimmed values compare equal")

	after, err := afero.ReadFile(fs, "/project/app.properties")
	require.NoError(t, err)
	assert.Equal(t, before, after, "unchanged file keeps its header")
}

func TestReconcile_SingleHeader(t *testing.T) {
	fs, r := setup(t)
	ctx := context.Background()

	for _, value := range []string{"a", "b", "c"} {
		written, err := r.Reconcile(ctx, "app.properties", []Entry{{"key", value}}, "", "test")
		require.NoError(t, err)
		require.True(t, written)
	}

	data, err := afero.ReadFile(fs, "/project/app.properties")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "#Updated at "))
	assert.True(t, strings.HasPrefix(string(data), "#Updated at "))
	assert.Equal(t, map[string]string{"key": "c"}, read(t, fs, "app.properties"))
}

func TestReconcile_AbsentKeyDiffers(t *testing.T) {
	fs, r := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/project/app.properties", []byte("other=1\n"), 0o644))

	written, err := r.Reconcile(context.Background(), "app.properties", []Entry{{"empty", ""}}, "", "test")
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "", read(t, fs, "app.properties")["empty"])
}

func TestUpdateDatabaseProperties(t *testing.T) {
	fs, r := setup(t)
	ctx := context.Background()

	sel := resolve(t, catalog.Request{Provider: catalog.Hibernate, Database: catalog.MySQL, HostName: "db.local", DatabaseName: "clinic", UserName: " root ", Password: "secret"})
	advisories, err := r.UpdateDatabaseProperties(ctx, sel, "petclinic")
	require.NoError(t, err)
	assert.Equal(t, []string{DatabaseDetailsAdvisory}, advisories)

	assert.Equal(t, map[string]string{
		DriverClassNameKey: "com.mysql.jdbc.Driver",
		URLKey:             "jdbc:mysql://db.local:3306/clinic",
		UserNameKey:        "root",
		PasswordKey:        "secret",
	}, read(t, fs, layout.DatabaseProperties))

	advisories, err = r.UpdateDatabaseProperties(ctx, sel, "petclinic")
	require.NoError(t, err)
	assert.Empty(t, advisories, "no advisory without a write")
}

func TestUpdateDatabaseProperties_DefaultUser(t *testing.T) {
	fs, r := setup(t)
	_, err := r.UpdateDatabaseProperties(context.Background(), resolve(t, catalog.Request{Provider: catalog.OpenJPA, Database: catalog.H2InMemory}), "petclinic")
	require.NoError(t, err)

	props := read(t, fs, layout.DatabaseProperties)
	assert.Equal(t, "sa", props[UserNameKey])
	assert.Equal(t, "jdbc:h2:mem:petclinic;DB_CLOSE_DELAY=-1", props[URLKey])
}

func TestUpdateDatabaseProperties_Advisories(t *testing.T) {
	tests := []struct {
		database string
		want     string
	}{
		{catalog.Oracle, "The ORACLE JDBC driver is not available in public maven repositories. Please adjust the pom.xml dependency to suit your needs"},
		{catalog.Postgres, DatabaseDetailsAdvisory},
		{catalog.HypersonicPersistent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.database, func(t *testing.T) {
			_, r := setup(t)
			advisories, err := r.UpdateDatabaseProperties(context.Background(), resolve(t, catalog.Request{Provider: catalog.Hibernate, Database: tt.database}), "petclinic")
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, advisories)
				return
			}
			assert.Equal(t, []string{tt.want}, advisories)
		})
	}
}

func TestUpdateDatabaseProperties_SelfManagedDeletes(t *testing.T) {
	fs, r := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/project/"+layout.DatabaseProperties, []byte("database.url=x\n"), 0o644))

	advisories, err := r.UpdateDatabaseProperties(context.Background(), resolve(t, catalog.Request{Provider: catalog.DataNucleus, Database: catalog.GoogleAppEngine}), "petclinic")
	require.NoError(t, err)
	assert.Empty(t, advisories)

	ok, err := afero.Exists(fs, "/project/"+layout.DatabaseProperties)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdatePlatformProperties(t *testing.T) {
	fs, r := setup(t)
	ctx := context.Background()
	path := layout.PlatformUnitProperties(catalog.DefaultPersistenceUnit)

	advisories, err := r.UpdatePlatformProperties(ctx, resolve(t, catalog.Request{Provider: catalog.DataNucleus2, Database: catalog.DatabaseDotCom, UserName: "ops"}), "petclinic")
	require.NoError(t, err)
	assert.Equal(t, []string{"Please update your database details in src/main/resources/persistenceUnit.properties."}, advisories)
	assert.Equal(t, "force://login.salesforce.com;user=ops;password=${password}", read(t, fs, path)["url"])

	_, err = r.UpdatePlatformProperties(ctx, resolve(t, catalog.Request{Provider: catalog.DataNucleus2, Database: catalog.Postgres}), "petclinic")
	require.NoError(t, err)
	ok, err := afero.Exists(fs, "/project/"+path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateLog4j(t *testing.T) {
	fs, r := setup(t)
	ctx := context.Background()
	dn, err := catalog.LookupProvider(catalog.DataNucleus)
	require.NoError(t, err)
	hibernate, err := catalog.LookupProvider(catalog.Hibernate)
	require.NoError(t, err)

	written, err := r.UpdateLog4j(ctx, dn)
	require.NoError(t, err)
	assert.False(t, written, "absent log4j configuration is not created")

	require.NoError(t, afero.WriteFile(fs, "/project/"+layout.Log4jProperties, []byte("log4j.rootLogger=error, stdout\n"), 0o644))
	written, err = r.UpdateLog4j(ctx, dn)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "WARN", read(t, fs, layout.Log4jProperties)[DataNucleusCategory])

	written, err = r.UpdateLog4j(ctx, dn)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = r.UpdateLog4j(ctx, hibernate)
	require.NoError(t, err)
	assert.True(t, written)
	props := read(t, fs, layout.Log4jProperties)
	assert.NotContains(t, props, DataNucleusCategory)
	assert.Equal(t, "error, stdout", props["log4j.rootLogger"])
}

func TestEntries(t *testing.T) {
	fs, r := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/project/"+layout.DatabaseProperties, []byte("database.url=jdbc:h2:mem:x\ndatabase.driverClassName=org.h2.Driver\n"), 0o644))

	lines, err := r.Entries(context.Background(), layout.DatabaseProperties)
	require.NoError(t, err)
	assert.Equal(t, []string{"database.driverClassName = org.h2.Driver", "database.url = jdbc:h2:mem:x"}, lines)
}
