// Package rules loads the rules matrix: which build descriptor records each
// database and ORM provider needs.
//
// The matrix is a YAML document with a common section and one entry per
// database key and per provider id. Parse fails fast when any catalog entry
// is missing, so a selection can never reconcile against an unknown rule set.
//
// # Queries
//
//	required, err := m.Required(db.Key, provider.ID)
//	universe := m.Universe()
//
// Required is the selected database entry, the selected provider entry and
// the common section. Universe is the union of all database and provider
// entries; anything in it that is not required is removed by reconciliation.
package rules
