// Package templates is the resource bundle of the persistence setup: descriptor
// templates used when an artifact does not exist yet, the dialect catalog and
// the default rules matrix.
//
// A missing resource is reported as ErrTemplateNotFound, which callers treat
// as a fatal precondition failure.
package templates
