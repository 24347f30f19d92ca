// Package platform manages the files and build fragments of the
// managed-hosting database (Google App Engine).
//
// UpdateDescriptor owns WEB-INF/appengine-web.xml and WEB-INF/logging.properties:
// both are created for the platform (the descriptor's application element set
// to the application id or project name) and deleted for any other database.
//
// Toggle flips three build descriptor fragments together:
//
//	maven-eclipse-plugin      enhancer buildCommand and gaeNature projectnature
//	maven-datanucleus-plugin  mappingExcludes
//	org.glassfish.web:jstl-impl scope (provided on the platform, default otherwise)
//
// Each fragment changes only when its presence flips, so enabling then
// disabling restores the descriptor to its previous structure.
package platform
