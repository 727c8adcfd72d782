package ingest

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"legis-news/internal/article"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) BulkUpsert(ctx context.Context, batch []*article.Article) (int64, error) {
	args := m.Called(ctx, batch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, f article.ListFilter) ([]article.Article, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]article.Article), args.Error(1)
}

type mockClient struct {
	mock.Mock
}

func (m *mockClient) FetchEverything(ctx context.Context, p FetchParams) (Response, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(Response), args.Error(1)
}

type ServiceSuite struct {
	suite.Suite

	repo   *mockRepo
	client *mockClient

	logBuf *bytes.Buffer

	svc *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.repo = &mockRepo{}
	s.client = &mockClient{}

	s.logBuf = &bytes.Buffer{}
	logger := log.New(s.logBuf, "", 0)

	s.svc = NewService(s.repo, s.client, logger)
}

func str(v string) *string { return &v }

func goodArticle(url string) RawArticle {
	return RawArticle{
		Author:      str("Jane Doe"),
		Title:       "Texas school funding debate",
		Description: str("teacher pay and school budget"),
		URL:         url,
		PublishedAt: "2024-01-01T00:00:00Z",
	}
}

func (s *ServiceSuite) TestAggregate_MissingKeyFailsBeforeStore() {
	s.client.
		On("FetchEverything", mock.Anything, mock.Anything).
		Return(Response{}, ErrMissingAPIKey).
		Once()

	_, err := s.svc.Aggregate(context.Background(), AggregateParams{})

	s.Require().ErrorIs(err, ErrMissingAPIKey)
	s.client.AssertExpectations(s.T())
	s.repo.AssertNotCalled(s.T(), "Count", mock.Anything)
	s.repo.AssertNotCalled(s.T(), "BulkUpsert", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestAggregate_PassesDateBoundsAndOverride() {
	params := AggregateParams{StartDate: "2024-01-01", EndDate: "2024-01-31", SourceURL: "https://alt.example/v2/everything"}

	s.client.
		On("FetchEverything", mock.Anything, FetchParams{
			From:    "2024-01-01",
			To:      "2024-01-31",
			BaseURL: "https://alt.example/v2/everything",
		}).
		Return(Response{}, nil).
		Once()

	s.repo.On("Count", mock.Anything).Return(int64(0), nil).Twice()
	s.repo.On("BulkUpsert", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	_, err := s.svc.Aggregate(context.Background(), params)

	s.NoError(err)
	s.client.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestAggregate_FiltersAndClassifies() {
	resp := Response{
		Status: "ok",
		Articles: []RawArticle{
			goodArticle("https://x/1"),
			{
				// no author, dropped
				Title:       "Ohio statehouse recap",
				URL:         "https://x/2",
				PublishedAt: "2024-01-02T00:00:00Z",
			},
			{
				// removal placeholder, dropped
				Author:      str("Wire"),
				Title:       "[Removed]",
				Description: str("[Removed]"),
				URL:         "https://x/3",
			},
			{
				// sentinel in description only, dropped
				Author:      str("Wire"),
				Title:       "Retracted report",
				Description: str("[Removed]"),
				URL:         "https://x/4",
			},
		},
	}

	s.client.
		On("FetchEverything", mock.Anything, mock.Anything).
		Return(resp, nil).
		Once()

	var captured []*article.Article
	s.repo.On("Count", mock.Anything).Return(int64(5), nil).Once()
	s.repo.
		On("BulkUpsert", mock.Anything, mock.AnythingOfType("[]*article.Article")).
		Return(int64(1), nil).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]*article.Article)
		}).
		Once()
	s.repo.On("Count", mock.Anything).Return(int64(6), nil).Once()

	newCount, err := s.svc.Aggregate(context.Background(), AggregateParams{})

	s.Require().NoError(err)
	s.EqualValues(1, newCount, "newCount is the post-merge minus pre-merge total")

	s.Require().Len(captured, 1, "only the complete article survives the filter")
	kept := captured[0]
	s.Equal("https://x/1", kept.URL)
	s.Equal("Texas", kept.State)
	s.Equal("education", kept.Topic)
	s.False(kept.CreatedAt.IsZero())
	s.Equal("2024-01-01T00:00:00Z", kept.PublishedDate.Format("2006-01-02T15:04:05Z07:00"))

	s.client.AssertExpectations(s.T())
	s.repo.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestAggregate_UpstreamErrorAborts() {
	s.client.
		On("FetchEverything", mock.Anything, mock.Anything).
		Return(Response{}, errors.New("status 502")).
		Once()

	_, err := s.svc.Aggregate(context.Background(), AggregateParams{})

	s.Error(err)
	s.repo.AssertNotCalled(s.T(), "BulkUpsert", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestAggregate_StoreErrorAborts() {
	s.client.
		On("FetchEverything", mock.Anything, mock.Anything).
		Return(Response{Articles: []RawArticle{goodArticle("https://x/1")}}, nil).
		Once()

	s.repo.On("Count", mock.Anything).Return(int64(0), nil).Once()
	s.repo.
		On("BulkUpsert", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("db down")).
		Once()

	_, err := s.svc.Aggregate(context.Background(), AggregateParams{})

	s.Error(err)
	s.Contains(err.Error(), "upserting articles")
}
