package port

import "context"

// CDN purges cached objects from the content delivery network.
type CDN interface {
	// Invalidate requests a purge of root-relative paths and returns the
	// provider's invalidation id once the request is accepted.
	Invalidate(ctx context.Context, paths []string) (string, error)
}
