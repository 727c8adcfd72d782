package ingest

import (
	"time"

	"legis-news/internal/article"
	"legis-news/internal/classify"
)

// MapRawArticle converts a raw news API article into its stored shape,
// tagging state and topic and stamping createdAt.
func MapRawArticle(raw RawArticle, now time.Time) article.Article {
	desc := ""
	if raw.Description != nil {
		desc = *raw.Description
	}

	return article.Article{
		URL:           raw.URL,
		Title:         raw.Title,
		Description:   raw.Description,
		Content:       raw.Content,
		PublishedDate: parsePublishedAt(raw.PublishedAt),
		State:         classify.State(raw.Title, desc),
		Topic:         classify.Topic(raw.Title, desc),
		Author:        raw.Author,
		ImageURL:      raw.URLToImage,
		CreatedAt:     now,
	}
}

// parsePublishedAt example "2024-01-01T00:00:00Z"
func parsePublishedAt(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
