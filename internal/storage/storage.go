package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service persists ledger export snapshots in remote object storage.
type Service interface {
	UploadObject(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}
