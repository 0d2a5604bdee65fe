package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// OCREngine is the recognition collaborator. It turns an encoded image into
// text fragments; everything downstream of it works on the returned batch only.
type OCREngine interface {
	Recognize(ctx context.Context, document []byte, language string) (*OCRBatch, error)
}
