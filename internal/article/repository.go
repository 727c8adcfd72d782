package article

import (
	"context"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListFilter narrows a listing. Zero values mean "no constraint".
type ListFilter struct {
	State  string    // exact match
	Topic  string    // exact match
	Search string    // case-insensitive substring on title or description
	Before time.Time // cursor: only articles published strictly before this
	Limit  int64
}

type Repository interface {
	// BulkUpsert writes the batch keyed on url and returns the number of
	// documents the store reports as newly inserted.
	BulkUpsert(ctx context.Context, batch []*Article) (int64, error)
	// Count returns the exact total number of stored articles.
	Count(ctx context.Context) (int64, error)
	// List returns articles matching the filter, newest first.
	List(ctx context.Context, f ListFilter) ([]Article, error)
}

type mongoRepository struct {
	col    *mongo.Collection
	logger *log.Logger
}

func NewMongoRepository(db *mongo.Database, logger *log.Logger) (Repository, error) {
	repo := &mongoRepository{
		col:    db.Collection("articles"),
		logger: logger,
	}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureIndexes enforces url uniqueness (the upsert conflict key) and keeps
// publishedDate indexed for the descending listing order.
func (r *mongoRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "url", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "publishedDate", Value: -1}},
		},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)

	if err != nil && r.logger != nil {
		r.logger.Printf("failed to create indexes: %v", err)
	}
	return err
}

func (r *mongoRepository) BulkUpsert(ctx context.Context, batch []*Article) (int64, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(batch))
	for _, a := range batch {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"url": a.URL}).
			SetReplacement(a).
			SetUpsert(true))
	}

	res, err := r.col.BulkWrite(ctx, models)
	if err != nil {
		return 0, err
	}

	if r.logger != nil {
		r.logger.Printf("bulk upsert: %d inserted, %d modified", res.UpsertedCount, res.ModifiedCount)
	}
	return res.UpsertedCount, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *mongoRepository) List(ctx context.Context, f ListFilter) ([]Article, error) {
	filter := bson.M{}
	if f.State != "" {
		filter["state"] = f.State
	}
	if f.Topic != "" {
		filter["topic"] = f.Topic
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}
	if !f.Before.IsZero() {
		filter["publishedDate"] = bson.M{"$lt": f.Before}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedDate", Value: -1}}).
		SetLimit(f.Limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var out []Article
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
