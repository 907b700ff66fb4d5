package port

import (
	"context"

	"postboard/internal/domain"
)

// PostRepository defines the contract for post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	List(ctx context.Context) ([]domain.Post, error)
	DeleteByID(ctx context.Context, id string) (*domain.Post, error)
}

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
