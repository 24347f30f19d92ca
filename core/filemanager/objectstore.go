package filemanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"persistence-setup/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore stores project files as objects under a key prefix.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates an object storage backend.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (o *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", o.bucket, err)
	}
	if exists {
		return nil
	}
	if err := o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", o.bucket, err)
	}
	return nil
}

func (o *ObjectStore) key(p string) (string, error) {
	clean, err := Clean(p)
	if err != nil {
		return "", err
	}
	if o.prefix == "" {
		return clean, nil
	}
	return o.prefix + "/" + clean, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func (o *ObjectStore) Exists(ctx context.Context, p string) (bool, error) {
	key, err := o.key(p)
	if err != nil {
		return false, err
	}
	_, err = o.client.StatObject(ctx, o.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return true, nil
}

func (o *ObjectStore) Read(ctx context.Context, p string) ([]byte, error) {
	key, err := o.key(p)
	if err != nil {
		return nil, err
	}
	obj, err := o.client.GetObject(ctx, o.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", p, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// minio reports missing keys on first read rather than on GetObject
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

func (o *ObjectStore) Write(ctx context.Context, p string, content []byte, _ string) (bool, error) {
	current, err := o.Read(ctx, p)
	if err == nil && bytes.Equal(current, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}

	key, err := o.key(p)
	if err != nil {
		return false, err
	}
	_, err = o.client.PutObject(ctx, o.bucket, key, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType(p)})
	if err != nil {
		return false, fmt.Errorf("failed to put %s: %w", p, err)
	}
	return true, nil
}

func (o *ObjectStore) Delete(ctx context.Context, p string, _ string) (bool, error) {
	ok, err := o.Exists(ctx, p)
	if err != nil || !ok {
		return false, err
	}
	key, err := o.key(p)
	if err != nil {
		return false, err
	}
	if err := o.client.RemoveObject(ctx, o.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return true, nil
}

func contentType(p string) string {
	switch path.Ext(p) {
	case ".xml":
		return "application/xml"
	case ".properties":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
