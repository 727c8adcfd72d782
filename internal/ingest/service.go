package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"legis-news/internal/article"
)

// removedSentinel marks placeholder entries the source emits for retracted
// content; such articles are never persisted.
const removedSentinel = "[Removed]"

// AggregateParams carries the ingestion trigger's query parameters.
type AggregateParams struct {
	StartDate string // ISO date, inclusive lower bound
	EndDate   string // ISO date, upper bound
	SourceURL string // optional endpoint override
}

type Service struct {
	repo   article.Repository
	client Client
	logger *log.Logger
}

func NewService(repo article.Repository, client Client, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		repo:   repo,
		client: client,
		logger: logger,
	}
}

// Aggregate fetches candidate articles, classifies and filters them, merges
// them into the store keyed on url, and returns the number of newly added
// articles. The count is the store total after minus before the merge, so
// it is best-effort telemetry rather than an audited figure.
func (s *Service) Aggregate(ctx context.Context, p AggregateParams) (int64, error) {
	resp, err := s.client.FetchEverything(ctx, FetchParams{
		From:    p.StartDate,
		To:      p.EndDate,
		BaseURL: p.SourceURL,
	})
	if err != nil {
		return 0, fmt.Errorf("fetching articles: %w", err)
	}

	now := time.Now().UTC()
	batch := make([]*article.Article, 0, len(resp.Articles))
	for _, raw := range resp.Articles {
		if !shouldKeep(raw) {
			continue
		}
		a := MapRawArticle(raw, now)
		batch = append(batch, &a)
	}

	before, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting before merge: %w", err)
	}

	upserted, err := s.repo.BulkUpsert(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("upserting articles: %w", err)
	}

	after, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting after merge: %w", err)
	}

	newCount := after - before
	s.logger.Printf("aggregated %d candidates, kept %d, %d new (store reported %d upserts)",
		len(resp.Articles), len(batch), newCount, upserted)

	return newCount, nil
}

// shouldKeep drops author-less articles and the source's removal
// placeholders.
func shouldKeep(raw RawArticle) bool {
	if raw.Author == nil || *raw.Author == "" {
		return false
	}
	if strings.Contains(raw.Title, removedSentinel) {
		return false
	}
	if raw.Description != nil && strings.Contains(*raw.Description, removedSentinel) {
		return false
	}
	return true
}
