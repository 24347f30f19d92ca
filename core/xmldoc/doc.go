// Package xmldoc holds the XML plumbing shared by the descriptor editors.
//
// Documents are parsed with etree, edited in memory and written back through
// a filemanager.FileManager. A Document remembers its canonical form (indented,
// insignificant whitespace stripped) at load time, so Save only writes when an
// edit changed the effective content.
//
// Element lookups match on local names, so prefixed elements such as
// "jee:jndi-lookup" are found by "jndi-lookup".
package xmldoc
