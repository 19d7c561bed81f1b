// Package blob provides durable storage for uploaded claim documents.
// Documents are opaque to the rest of the application; only the storage key
// is recorded on the claim.
package blob

import (
	"context"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"

	apperrors "github.com/lifekey/lifekey/internal/errors"
)

// Store persists uploaded documents and returns nothing but errors; callers
// keep the key they chose as the document reference.
type Store interface {
	// Save writes data under the given key, overwriting any existing object.
	Save(ctx context.Context, key string, data []byte, contentType string) error
}

// BucketStore implements Store on top of a gocloud.dev bucket. The bucket URL
// decides the backing service (file://, s3://, gs://, ...); the default
// configuration uses a local directory.
type BucketStore struct {
	bucket *blob.Bucket
}

// OpenStore opens the bucket identified by the URL.
func OpenStore(ctx context.Context, url string) (*BucketStore, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open blob bucket")
	}
	return &BucketStore{bucket: bucket}, nil
}

// Save writes data under the given key.
func (s *BucketStore) Save(ctx context.Context, key string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return apperrors.Wrap(err, "failed to write blob")
	}
	return nil
}

// Close releases the underlying bucket resources.
func (s *BucketStore) Close() error {
	return s.bucket.Close()
}
