package propfile

import (
	"context"
	"strings"

	"persistence-setup/core/utils"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/layout"
	"persistence-setup/feature/jpa/templates"
)

// Tracked database.properties keys.
const (
	DriverClassNameKey = "database.driverClassName"
	URLKey             = "database.url"
	UserNameKey        = "database.username"
	PasswordKey        = "database.password"
)

// DatabaseDetailsAdvisory asks the operator to review database.properties.
const DatabaseDetailsAdvisory = "Please update your database details in " + layout.DatabaseProperties + "."

// UpdateDatabaseProperties reconciles database.properties with the selection.
// Providers that manage their own connections get the file deleted instead.
func (r *Reconciler) UpdateDatabaseProperties(ctx context.Context, sel catalog.Selection, projectName string) ([]string, error) {
	if sel.Provider.SelfManaged() {
		_, err := r.fm.Delete(ctx, layout.DatabaseProperties, "ORM provider is "+sel.Provider.ID)
		return nil, err
	}

	desired := []Entry{
		{DriverClassNameKey, sel.Database.DriverClassName},
		{URLKey, sel.ConnectionURL(projectName)},
		{UserNameKey, utils.TrimToEmpty(sel.EffectiveUser())},
		{PasswordKey, utils.TrimToEmpty(sel.Password)},
	}
	written, err := r.Reconcile(ctx, layout.DatabaseProperties, desired, templates.DatabaseProperties,
		"database connection for "+sel.Database.ID)
	if err != nil || !written {
		return nil, err
	}
	return databaseAdvisories(sel.Database), nil
}

func databaseAdvisories(db catalog.Database) []string {
	switch db.ID {
	case catalog.Oracle, catalog.DB2ExpressC, catalog.DB2400:
		return []string{"The " + db.ID + " JDBC driver is not available in public maven repositories. Please adjust the pom.xml dependency to suit your needs"}
	case catalog.Postgres, catalog.DerbyEmbedded, catalog.DerbyClient, catalog.MSSQL, catalog.Sybase, catalog.MySQL:
		return []string{DatabaseDetailsAdvisory}
	}
	return nil
}

// UpdatePlatformProperties reconciles the hosted platform's unit properties file,
// deleting it for every other database.
func (r *Reconciler) UpdatePlatformProperties(ctx context.Context, sel catalog.Selection, projectName string) ([]string, error) {
	path := layout.PlatformUnitProperties(sel.PlatformUnitName())
	if !sel.Database.IsHostedPlatform() {
		_, err := r.fm.Delete(ctx, path, "database is "+sel.Database.ID)
		return nil, err
	}

	url := utils.ReplaceAll(sel.Database.ConnectionURL(sel.HostName, "", projectName),
		catalog.UserNameToken, utils.DefaultIfEmpty(sel.UserName, "${userName}"),
		catalog.PasswordToken, utils.DefaultIfEmpty(sel.Password, "${password}"),
	)
	written, err := r.Reconcile(ctx, path, []Entry{{"url", strings.TrimSpace(url)}},
		templates.DatabaseDotComProperties, "hosted platform connection")
	if err != nil || !written {
		return nil, err
	}
	return []string{"Please update your database details in " + path + "."}, nil
}
