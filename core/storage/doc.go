// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that project files can live in a bucket
// instead of on local disk. The filemanager package builds its object-store
// backend on top of this interface.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the project bucket.
//   - StatObject: existence check without a download.
//   - PutObject / GetObject: write and read file content.
//   - RemoveObject: delete a file.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "projects")
package storage
