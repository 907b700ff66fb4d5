package observability

import (
	"context"
	"time"

	"postboard/internal/domain"
	"postboard/internal/port"
)

type instrumentedStorage struct {
	next    port.ObjectStorage
	metrics *Metrics
}

// InstrumentStorage wraps an ObjectStorage with backend metrics.
func InstrumentStorage(next port.ObjectStorage, m *Metrics) port.ObjectStorage {
	return &instrumentedStorage{next: next, metrics: m}
}

func (s *instrumentedStorage) Put(ctx context.Context, input port.PutInput) (*port.PutOutput, error) {
	start := time.Now()
	out, err := s.next.Put(ctx, input)
	s.metrics.ObserveBackend("s3", "put", start, err)
	if err == nil {
		s.metrics.AddUploadedBytes(input.Size)
	}
	return out, err
}

func (s *instrumentedStorage) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.metrics.ObserveBackend("s3", "delete", start, err)
	return err
}

func (s *instrumentedStorage) GetSignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	start := time.Now()
	url, err := s.next.GetSignedURL(ctx, key, ttl)
	s.metrics.ObserveBackend("s3", "presign", start, err)
	return url, err
}

type instrumentedCDN struct {
	next    port.CDN
	metrics *Metrics
}

// InstrumentCDN wraps a CDN gateway with backend metrics.
func InstrumentCDN(next port.CDN, m *Metrics) port.CDN {
	return &instrumentedCDN{next: next, metrics: m}
}

func (c *instrumentedCDN) Invalidate(ctx context.Context, paths []string) (string, error) {
	start := time.Now()
	id, err := c.next.Invalidate(ctx, paths)
	c.metrics.ObserveBackend("cloudfront", "invalidate", start, err)
	return id, err
}

type instrumentedPosts struct {
	next    port.PostRepository
	metrics *Metrics
}

// InstrumentPosts wraps a PostRepository with backend metrics.
func InstrumentPosts(next port.PostRepository, m *Metrics) port.PostRepository {
	return &instrumentedPosts{next: next, metrics: m}
}

func (r *instrumentedPosts) Create(ctx context.Context, post *domain.Post) error {
	start := time.Now()
	err := r.next.Create(ctx, post)
	r.metrics.ObserveBackend("mongodb", "create", start, err)
	return err
}

func (r *instrumentedPosts) List(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	posts, err := r.next.List(ctx)
	r.metrics.ObserveBackend("mongodb", "list", start, err)
	return posts, err
}

func (r *instrumentedPosts) DeleteByID(ctx context.Context, id string) (*domain.Post, error) {
	start := time.Now()
	post, err := r.next.DeleteByID(ctx, id)
	r.metrics.ObserveBackend("mongodb", "delete", start, err)
	return post, err
}
