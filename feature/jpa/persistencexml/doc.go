// Package persistencexml edits the JPA persistence descriptor
// (src/main/resources/META-INF/persistence.xml).
//
// Update locates the persistence unit of a selection (the explicit unit name,
// or "transactions-optional" for the managed-hosting database and
// "persistenceUnit" otherwise), clears it and rebuilds the provider element
// and the provider-specific properties block. Other units are left alone.
//
// # Properties
//
// Hibernate, OpenJPA and EclipseLink get a dialect from the dialect catalog
// plus a schema action that becomes "validate" (or "none") when the project
// carries a database reverse engineering marker. The DataNucleus family gets
// connection properties and auto-create/validate toggles instead.
//
// The descriptor is written only when its canonical form changed.
package persistencexml
