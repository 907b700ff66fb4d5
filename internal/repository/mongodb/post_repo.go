package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"postboard/internal/domain"
	"postboard/internal/port"
)

type postRepo struct {
	coll *mongo.Collection
}

// NewPostRepo creates a new MongoDB-backed PostRepository.
func NewPostRepo(db *mongo.Database) port.PostRepository {
	return &postRepo{coll: db.Collection(PostsCollection)}
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	if strings.TrimSpace(post.Caption) == "" {
		return domain.Validation("caption is required")
	}
	if strings.TrimSpace(post.Image) == "" {
		return domain.Validation("image is required")
	}

	// BSON dates carry millisecond precision.
	now := time.Now().UTC().Truncate(time.Millisecond)
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("postRepo.Create: %w", err)
	}
	return nil
}

func (r *postRepo) List(ctx context.Context) ([]domain.Post, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("postRepo.List: %w", err)
	}

	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("postRepo.List decode: %w", err)
	}
	return posts, nil
}

func (r *postRepo) DeleteByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var post domain.Post
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postRepo.DeleteByID: %w", err)
	}
	return &post, nil
}
