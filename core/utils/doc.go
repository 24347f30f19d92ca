// Package utils provides small string helpers shared by the editors.
// They cover blank checks and defaults used when resolving connection
// parameters from optional user input.
package utils
