package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a captioned image. Image holds the object storage key.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Image     string             `bson:"image" json:"image"`
	Caption   string             `bson:"caption" json:"caption"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PostView is a Post annotated with the public CDN URL of its image.
type PostView struct {
	Post
	ImageURL string `json:"imageUrl"`
}
