package interfaces

import (
	"context"
	"io"
)

// ObjectStorage accepts a binary upload and returns a durable, publicly
// reachable URL for it. The backend is opaque: filesystem, S3, GCS, or a
// test double all satisfy the same contract.
type ObjectStorage interface {
	Put(ctx context.Context, key string, contents io.Reader) (url string, err error)
}
