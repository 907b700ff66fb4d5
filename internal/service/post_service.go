package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"postboard/internal/config"
	"postboard/internal/domain"
	"postboard/internal/keygen"
	"postboard/internal/port"
)

// CreatePostInput is the DTO for post creation. Resize selects the
// transformed upload path; otherwise the original bytes are streamed.
type CreatePostInput struct {
	Caption string
	File    multipart.File
	Header  *multipart.FileHeader
	Resize  bool
}

// PostService defines the post lifecycle contract.
type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	List(ctx context.Context) ([]domain.PostView, error)
	Delete(ctx context.Context, id string) (*domain.Post, error)
}

type postService struct {
	repo        port.PostRepository
	storage     port.ObjectStorage
	cdn         port.CDN
	transformer port.ImageTransformer
	keyPrefix   string
	maxBytes    int64
	cdnBaseURL  string
}

// NewPostService creates a new PostService implementation.
func NewPostService(
	repo port.PostRepository,
	storage port.ObjectStorage,
	cdn port.CDN,
	transformer port.ImageTransformer,
	s3Cfg *config.S3Config,
	cdnCfg *config.CDNConfig,
) PostService {
	prefix := s3Cfg.KeyPrefix
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &postService{
		repo:        repo,
		storage:     storage,
		cdn:         cdn,
		transformer: transformer,
		keyPrefix:   prefix,
		maxBytes:    s3Cfg.MaxFileSizeBytes(),
		cdnBaseURL:  cdnCfg.BaseURL,
	}
}

func (s *postService) Create(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	if input.File == nil || input.Header == nil {
		return nil, domain.Validation("image file is required")
	}
	caption := strings.TrimSpace(input.Caption)
	if caption == "" {
		return nil, domain.Validation("caption is required")
	}
	if s.maxBytes > 0 && input.Header.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, ok := domain.AllowedImageTypes[detectedType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	token, err := keygen.RandomHex(keygen.DefaultBytes)
	if err != nil {
		return nil, fmt.Errorf("generating object key: %w", err)
	}

	put, err := s.buildPut(input, token, detectedType)
	if err != nil {
		return nil, err
	}

	log.Printf("postService.Create: uploading %s (%s, %d bytes, resize=%t)",
		put.Key, put.ContentType, put.Size, input.Resize)

	if _, err := s.storage.Put(ctx, put); err != nil {
		log.Printf("postService.Create: upload of %s failed: %v", put.Key, err)
		return nil, domain.NewError(domain.ErrStorage, "", err)
	}

	post := &domain.Post{Caption: caption, Image: put.Key}
	if err := s.repo.Create(ctx, post); err != nil {
		log.Printf("postService.Create: insert failed for %s: %v", put.Key, err)
		s.discardObject(ctx, put.Key)
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, domain.NewError(domain.ErrRepository, "", err)
	}

	return post, nil
}

func (s *postService) buildPut(input CreatePostInput, token, detectedType string) (port.PutInput, error) {
	if !input.Resize {
		return port.PutInput{
			Key:         keygen.ObjectKey(s.keyPrefix, token, ""),
			Body:        input.File,
			ContentType: detectedType,
			Size:        input.Header.Size,
		}, nil
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return port.PutInput{}, fmt.Errorf("reading file: %w", err)
	}
	img, err := s.transformer.Transform(data)
	if err != nil {
		return port.PutInput{}, err
	}
	name := baseFilename(input.Header.Filename)
	if img.ContentType != detectedType {
		name = withExtension(name, domain.AllowedImageTypes[img.ContentType])
	}
	return port.PutInput{
		Key:         keygen.ObjectKey(s.keyPrefix, token, name),
		Body:        bytes.NewReader(img.Data),
		ContentType: img.ContentType,
		Size:        int64(len(img.Data)),
	}, nil
}

// discardObject removes an object whose record could not be written. A
// failure leaves an orphaned object, which is logged and accepted.
func (s *postService) discardObject(ctx context.Context, key string) {
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Printf("postService.Create: orphaned object %s left in bucket: %v", key, err)
		return
	}
	log.Printf("postService.Create: removed object %s after failed insert", key)
}

func (s *postService) List(ctx context.Context) ([]domain.PostView, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewError(domain.ErrRepository, "", err)
	}

	views := make([]domain.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, domain.PostView{Post: p, ImageURL: s.cdnBaseURL + p.Image})
	}
	return views, nil
}

func (s *postService) Delete(ctx context.Context, id string) (*domain.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.Validation("post id is required")
	}

	log.Printf("postService.Delete: deleting post %s", id)

	post, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.NewError(domain.ErrRepository, "", err)
	}

	if err := s.storage.Delete(ctx, post.Image); err != nil {
		log.Printf("postService.Delete: record %s removed but object %s remains: %v", id, post.Image, err)
		return nil, domain.NewError(domain.ErrStorage, "", err)
	}

	invalidationID, err := s.cdn.Invalidate(ctx, []string{"/" + post.Image})
	if err != nil {
		log.Printf("postService.Delete: cdn invalidation for %s failed: %v", post.Image, err)
		return nil, domain.NewError(domain.ErrCDN, "", err)
	}
	log.Printf("postService.Delete: invalidation %s issued for %s", invalidationID, post.Image)

	return post, nil
}

// withExtension replaces the extension of name with ext. An empty name or
// ext leaves name unchanged.
func withExtension(name, ext string) string {
	if name == "" || ext == "" {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name)) + "." + ext
}

func baseFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}
