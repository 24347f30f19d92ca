// Package jpa reconciles the persistence setup of a Spring web project.
//
// A single invocation takes a selection (ORM provider, database and optional
// connection details) and brings every persistence artifact in line with it:
// the wiring descriptor, the persistence descriptor, the platform deployment
// descriptor, the property files and the build descriptor.
//
// # Sequence
//
// Service.Setup runs the steps in a fixed order, each one loading its artifact
// fresh so it observes the writes of the earlier steps:
//
//  1. disable the platform build fragments unless the database is the managed host
//  2. wiring descriptor
//  3. persistence descriptor
//  4. platform deployment descriptor
//  5. hosted-platform connection properties
//  6. database.properties (skipped for JNDI data sources)
//  7. log4j category for the DataNucleus family
//  8. build properties from the rules matrix
//  9. dependencies, repositories, plugin repositories, filters, resources and plugins
//  10. enable the platform build fragments when the database is the managed host
//
// Invocations are serialized by the Service. Dry runs go through a
// filemanager.Recorder overlay, so the result lists every change without
// touching the project.
//
// # HTTP
//
// The Feature mounts the handler under /jpa:
//
//	POST /jpa/setup      run a setup for a JSON selection
//	GET  /jpa/status     installation probes and connection settings
//	GET  /jpa/databases  database catalog
//	GET  /jpa/providers  ORM provider catalog
//	GET  /jpa/history    journaled changes
package jpa
