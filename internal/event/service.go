package event

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"legis-news/internal/article"
)

type Publisher interface {
	PublishArticleUpdated(ctx context.Context, a *article.Article) error
}

// Service watches the articles collection and republishes every upserted
// document to the message bus for downstream consumers.
type Service struct {
	col       *mongo.Collection
	publisher Publisher
	logger    *log.Logger
}

func NewService(col *mongo.Collection, publisher Publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		col:       col,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) Run(ctx context.Context) {
	stream, err := s.col.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		s.logger.Printf("events: failed to open change stream: %v", err)
		return
	}
	defer stream.Close(ctx)

	s.logger.Println("events: watching article change stream...")

	for stream.Next(ctx) {
		var change bson.M
		if err := stream.Decode(&change); err != nil {
			s.logger.Printf("events: failed decoding change event: %v", err)
			continue
		}

		id, ok := extractDocumentID(change)
		if !ok {
			s.logger.Printf("events: skip event missing document id: %v", change)
			continue
		}

		var a article.Article
		if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
			s.logger.Printf("events: failed fetching changed article %s: %v", id.Hex(), err)
			continue
		}

		if err := s.publisher.PublishArticleUpdated(ctx, &a); err != nil {
			s.logger.Printf("events: failed publishing article %s: %v", a.URL, err)
			continue
		}

		s.logger.Printf("events: published update for %s", a.URL)
	}

	if err := stream.Err(); err != nil {
		s.logger.Printf("events: change stream closed with error: %v", err)
	} else {
		s.logger.Println("events: change stream stopped")
	}
}

func extractDocumentID(change bson.M) (primitive.ObjectID, bool) {
	if docKey, ok := change["documentKey"].(bson.M); ok {
		if id, ok := docKey["_id"].(primitive.ObjectID); ok {
			return id, true
		}
	}
	return primitive.NilObjectID, false
}
