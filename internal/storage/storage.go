package storage

import (
	"context"
	"io"
)

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service stores user-uploaded objects (avatars) in remote object storage.
type Service interface {
	UploadObject(ctx context.Context, body io.Reader, opts UploadOptions) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}
