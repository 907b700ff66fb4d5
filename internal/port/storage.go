package port

import (
	"context"
	"io"
	"time"
)

// PutInput encapsulates the parameters needed to store an object.
type PutInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// PutOutput contains the result of a successful put.
type PutOutput struct {
	Key      string
	Location string
	ETag     string
}

// ObjectStorage abstracts the image bucket. GetSignedURL with a
// non-positive ttl uses the gateway's configured lifetime.
type ObjectStorage interface {
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
	Delete(ctx context.Context, key string) error
	GetSignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
