// Package layout names the project-relative paths of every artifact the
// persistence setup reads or writes.
package layout

const (
	POM                = "pom.xml"
	PersistenceXML     = "src/main/resources/META-INF/persistence.xml"
	ApplicationContext = "src/main/resources/META-INF/spring/applicationContext.xml"
	DatabaseProperties = "src/main/resources/META-INF/spring/database.properties"
	SchemaMarker       = "src/main/resources/dbre.xml"
	Log4jProperties    = "src/main/resources/log4j.properties"
	AppEngineWebXML    = "src/main/webapp/WEB-INF/appengine-web.xml"
	LoggingProperties  = "src/main/webapp/WEB-INF/logging.properties"
)

// PlatformUnitProperties returns the hosted-platform connection file for a persistence unit.
func PlatformUnitProperties(unit string) string {
	return "src/main/resources/" + unit + ".properties"
}
