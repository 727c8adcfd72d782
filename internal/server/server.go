package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"legis-news/internal/article"
	"legis-news/internal/ingest"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Aggregator triggers one ingestion run.
type Aggregator interface {
	Aggregate(ctx context.Context, p ingest.AggregateParams) (int64, error)
}

type Server struct {
	agg    Aggregator
	repo   article.Repository
	logger *log.Logger
	router *mux.Router
}

func New(agg Aggregator, repo article.Repository, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		agg:    agg,
		repo:   repo,
		logger: logger,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// routes registers GET-only handlers; mux answers other methods with 405.
func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.HandleFunc("/api/aggregate", s.handleAggregate).Methods(http.MethodGet)
	s.router.HandleFunc("/api/news", s.handleNews).Methods(http.MethodGet)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type aggregateResponse struct {
	Message  string `json:"message"`
	NewCount int64  `json:"newCount"`
}

type newsResponse struct {
	Articles []article.Article `json:"articles"`
	Cursor   *string           `json:"cursor"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	newCount, err := s.agg.Aggregate(r.Context(), ingest.AggregateParams{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		SourceURL: q.Get("url"),
	})
	if err != nil {
		s.logger.Printf("aggregation failed: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	s.writeJSON(w, http.StatusOK, aggregateResponse{
		Message:  "News aggregated successfully.",
		NewCount: newCount,
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := article.ListFilter{
		State:  q.Get("state"),
		Topic:  q.Get("topic"),
		Search: q.Get("search"),
		Limit:  parseLimit(q.Get("limit")),
	}

	if raw := q.Get("cursor"); raw != "" {
		before, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.logger.Printf("invalid cursor %q: %v", raw, err)
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch articles"})
			return
		}
		filter.Before = before
	}

	articles, err := s.repo.List(r.Context(), filter)
	if err != nil {
		s.logger.Printf("listing articles failed: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch articles"})
		return
	}
	if articles == nil {
		articles = []article.Article{}
	}

	// The cursor is the published date of the last row; null tells the
	// caller there are no more pages.
	var cursor *string
	if len(articles) > 0 {
		c := articles[len(articles)-1].PublishedDate.Format(time.RFC3339Nano)
		cursor = &c
	}

	s.writeJSON(w, http.StatusOK, newsResponse{Articles: articles, Cursor: cursor})
}

// parseLimit hardens the page size: anything non-numeric or non-positive
// falls back to the default, oversized values are clamped.
func parseLimit(raw string) int64 {
	if raw == "" {
		return defaultPageSize
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return defaultPageSize
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Printf("writing response: %v", err)
	}
}
