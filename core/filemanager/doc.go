// Package filemanager provides access to the files of the project being reconciled.
//
// Every editor reads and writes project artifacts through the FileManager
// interface, never through the os package directly. Paths are slash-separated
// and relative to the project root (e.g. "src/main/resources/META-INF/persistence.xml").
//
// # Backends
//
//   - Local: a directory on an afero filesystem (afero.NewOsFs in production,
//     afero.NewMemMapFs in tests).
//   - ObjectStore: objects under a key prefix in a MinIO/S3 bucket.
//
// Both backends only perform a physical write when the new content differs
// from what is stored.
//
// # Recorder
//
// Recorder decorates a backend for one invocation. It records each effective
// mutation as a Change and, in dry-run mode, keeps writes in memory so later
// steps see the pending state without the backend being touched.
//
// # Usage
//
//	fm := filemanager.NewLocal(afero.NewOsFs(), "/path/to/project")
//	rec := filemanager.NewRecorder(fm, false, log)
//	written, err := rec.Write(ctx, "pom.xml", data, "Updated dependencies")
//	for _, c := range rec.Changes() { ... }
package filemanager
