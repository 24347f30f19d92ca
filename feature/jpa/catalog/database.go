package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDatabase is returned for database ids outside the catalog.
var ErrUnknownDatabase = errors.New("unknown database")

// Database ids.
const (
	DatabaseDotCom       = "DATABASE_DOT_COM"
	DB2ExpressC          = "DB2_EXPRESS_C"
	DB2400               = "DB2_400"
	DerbyEmbedded        = "DERBY_EMBEDDED"
	DerbyClient          = "DERBY_CLIENT"
	Firebird             = "FIREBIRD"
	GoogleAppEngine      = "GOOGLE_APP_ENGINE"
	H2InMemory           = "H2_IN_MEMORY"
	HypersonicInMemory   = "HYPERSONIC_IN_MEMORY"
	HypersonicPersistent = "HYPERSONIC_PERSISTENT"
	MSSQL                = "MSSQL"
	MySQL                = "MYSQL"
	Oracle               = "ORACLE"
	Postgres             = "POSTGRES"
	Sybase               = "SYBASE"
)

// Placeholders inside connection string templates.
const (
	HostNameToken    = "HOST_NAME"
	ProjectNameToken = "TO_BE_CHANGED_BY_ADDON"
	UserNameToken    = "USER_NAME"
	PasswordToken    = "PASSWORD"
)

// Database is one row of the database catalog.
type Database struct {
	// ID is the selection identifier (e.g. "MYSQL").
	ID string `json:"id"`
	// Key is the rules matrix entry; several ids may share one key.
	Key string `json:"key"`
	// DriverClassName is the JDBC driver, empty for platform-managed stores.
	DriverClassName string `json:"driver_class_name"`
	// ConnectionString is the URL template.
	ConnectionString string `json:"connection_string"`
	// DefaultUser is used when no user name is supplied.
	DefaultUser string `json:"default_user,omitempty"`
	// ValidationQuery is the pool health check statement, if the database has one.
	ValidationQuery string `json:"validation_query,omitempty"`
}

// IsManagedHosting reports whether the database is the managed-hosting platform
// that needs a deployment descriptor and a container-free entity manager factory.
func (d Database) IsManagedHosting() bool {
	return d.ID == GoogleAppEngine
}

// IsHostedPlatform reports whether connection details come from a separate
// unit properties file instead of the persistence unit.
func (d Database) IsHostedPlatform() bool {
	return d.ID == DatabaseDotCom
}

// PlatformManaged reports whether the persistence unit is managed by the platform,
// which selects the alternate adapter and drops the transaction type.
func (d Database) PlatformManaged() bool {
	return d.IsManagedHosting() || d.IsHostedPlatform()
}

// ConnectionURL resolves the connection string template.
// The project-name token takes the database name, or projectName when none is given.
// Otherwise the database name is appended (":" for Oracle, "/" elsewhere).
// HOST_NAME defaults to localhost.
func (d Database) ConnectionURL(hostName, databaseName, projectName string) string {
	url := d.ConnectionString
	if strings.Contains(url, ProjectNameToken) {
		name := databaseName
		if strings.TrimSpace(name) == "" {
			name = projectName
		}
		url = strings.ReplaceAll(url, ProjectNameToken, name)
	} else if strings.TrimSpace(databaseName) != "" {
		delimiter := "/"
		if d.ID == Oracle {
			delimiter = ":"
		}
		url += delimiter + databaseName
	}

	if strings.TrimSpace(hostName) == "" {
		hostName = "localhost"
	}
	return strings.ReplaceAll(url, HostNameToken, hostName)
}

// UserOrDefault returns userName, or the database's fixed login when it has one.
func (d Database) UserOrDefault(userName string) string {
	if strings.TrimSpace(userName) == "" && d.DefaultUser != "" {
		return d.DefaultUser
	}
	return userName
}

var databases = []Database{
	{ID: DatabaseDotCom, Key: DatabaseDotCom, ConnectionString: "force://login.salesforce.com;user=USER_NAME;password=PASSWORD"},
	{ID: DB2ExpressC, Key: DB2ExpressC, DriverClassName: "com.ibm.db2.jcc.DB2Driver", ConnectionString: "jdbc:db2://HOST_NAME:50000"},
	{ID: DB2400, Key: DB2400, DriverClassName: "com.ibm.as400.access.AS400JDBCDriver", ConnectionString: "jdbc:as400://HOST_NAME"},
	{ID: DerbyEmbedded, Key: DerbyEmbedded, DriverClassName: "org.apache.derby.jdbc.EmbeddedDriver", ConnectionString: "jdbc:derby:TO_BE_CHANGED_BY_ADDON;create=true"},
	{ID: DerbyClient, Key: DerbyClient, DriverClassName: "org.apache.derby.jdbc.ClientDriver", ConnectionString: "jdbc:derby://HOST_NAME:1527/TO_BE_CHANGED_BY_ADDON;create=true"},
	{ID: Firebird, Key: Firebird, DriverClassName: "org.firebirdsql.jdbc.FBDriver", ConnectionString: "jdbc:firebirdsql://HOST_NAME/TO_BE_CHANGED_BY_ADDON"},
	{ID: GoogleAppEngine, Key: GoogleAppEngine, ConnectionString: "appengine"},
	{ID: H2InMemory, Key: H2InMemory, DriverClassName: "org.h2.Driver", ConnectionString: "jdbc:h2:mem:TO_BE_CHANGED_BY_ADDON;DB_CLOSE_DELAY=-1", DefaultUser: "sa"},
	{ID: HypersonicInMemory, Key: "HYPERSONIC", DriverClassName: "org.hsqldb.jdbcDriver", ConnectionString: "jdbc:hsqldb:mem:TO_BE_CHANGED_BY_ADDON", DefaultUser: "sa"},
	{ID: HypersonicPersistent, Key: "HYPERSONIC", DriverClassName: "org.hsqldb.jdbcDriver", ConnectionString: "jdbc:hsqldb:file:TO_BE_CHANGED_BY_ADDON;shutdown=true", DefaultUser: "sa"},
	{ID: MSSQL, Key: MSSQL, DriverClassName: "net.sourceforge.jtds.jdbc.Driver", ConnectionString: "jdbc:jtds:sqlserver://HOST_NAME:1433"},
	{ID: MySQL, Key: MySQL, DriverClassName: "com.mysql.jdbc.Driver", ConnectionString: "jdbc:mysql://HOST_NAME:3306", ValidationQuery: "SELECT 1"},
	{ID: Oracle, Key: Oracle, DriverClassName: "oracle.jdbc.OracleDriver", ConnectionString: "jdbc:oracle:thin:@HOST_NAME:1521", ValidationQuery: "SELECT 1 FROM DUAL"},
	{ID: Postgres, Key: Postgres, DriverClassName: "org.postgresql.Driver", ConnectionString: "jdbc:postgresql://HOST_NAME:5432", ValidationQuery: "SELECT version();"},
	{ID: Sybase, Key: Sybase, DriverClassName: "net.sourceforge.jtds.jdbc.Driver", ConnectionString: "jdbc:jtds:sybase://HOST_NAME:5000", DefaultUser: "sa"},
}

// Databases returns the database catalog in display order.
func Databases() []Database {
	return append([]Database(nil), databases...)
}

// DatabaseKeys returns the distinct rules matrix keys in catalog order.
func DatabaseKeys() []string {
	seen := make(map[string]bool, len(databases))
	var keys []string
	for _, d := range databases {
		if !seen[d.Key] {
			seen[d.Key] = true
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// DatabaseIDs returns every database id in catalog order.
func DatabaseIDs() []string {
	ids := make([]string, 0, len(databases))
	for _, d := range databases {
		ids = append(ids, d.ID)
	}
	return ids
}

// LookupDatabase finds a database by id, ignoring case.
func LookupDatabase(id string) (Database, error) {
	for _, d := range databases {
		if strings.EqualFold(d.ID, strings.TrimSpace(id)) {
			return d, nil
		}
	}
	return Database{}, fmt.Errorf("%w: %q", ErrUnknownDatabase, id)
}
