package article

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a stored news article. URL is the identity: re-ingesting the
// same URL replaces the existing document instead of creating a new one.
// State and Topic are never empty; the classifier falls back to its
// "Unknown"/"General" sentinels.
type Article struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	URL           string             `bson:"url" json:"url"`
	Title         string             `bson:"title" json:"title"`
	Description   *string            `bson:"description" json:"description"`
	Content       *string            `bson:"content" json:"content"`
	PublishedDate time.Time          `bson:"publishedDate" json:"published_date"`
	State         string             `bson:"state" json:"state"`
	Topic         string             `bson:"topic" json:"topic"`
	Author        *string            `bson:"author" json:"author"`
	ImageURL      *string            `bson:"imageUrl" json:"image_url"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
}
