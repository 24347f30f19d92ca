// Package catalog holds the selection model: the fixed database and ORM
// provider catalogs, the dialect catalog and the resolved Selection that
// drives one reconciliation.
//
// Catalog rows are plain records. Per-database and per-provider behaviour is
// expressed by small predicates (IsManagedHosting, SelfManaged, ...) and by
// explicit switches in the editors.
package catalog
