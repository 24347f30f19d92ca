// Package propfile reconciles the properties files of the persistence setup.
//
// Reconcile is the general operation: a set of tracked keys is compared with
// desired values and the file is rewritten, with a "#Updated at" header, only
// when one of them differs. Untracked keys survive. An unchanged file is never
// touched, so re-running a setup leaves it byte-for-byte identical.
//
// # Files
//
//   - database.properties: driver, url, username and password of the pooled
//     data source; deleted for providers that manage their own connections
//   - <unit>.properties: the hosted platform connection url; deleted for
//     every other database
//   - log4j.properties: the DataNucleus log category, only when the file exists
package propfile
