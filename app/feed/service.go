package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/notiongram/app/metrics"
	"github.com/lysyi3m/notiongram/app/notion"
)

var ErrMissingDatabaseID = errors.New("NOTION_DATABASE_ID is not configured")

// Querier runs one database query against the upstream service.
type Querier interface {
	QueryDatabase(ctx context.Context, databaseID string) (*notion.QueryResponse, error)
}

var _ Querier = (*notion.Client)(nil)

// Service assembles the feed: one upstream query per call, every record
// normalized, discards and filtered items dropped. Nothing is cached.
type Service struct {
	querier    Querier
	schemas    *SchemaCache
	filterer   *Filterer
	databaseID string
}

func NewService(querier Querier, schemas *SchemaCache, databaseID string) *Service {
	return &Service{
		querier:    querier,
		schemas:    schemas,
		filterer:   NewFilterer(),
		databaseID: databaseID,
	}
}

// Run returns the assembled items in upstream order.
func (s *Service) Run(ctx context.Context) ([]Item, error) {
	if s.databaseID == "" {
		return nil, ErrMissingDatabaseID
	}

	start := time.Now()
	resp, err := s.querier.QueryDatabase(ctx, s.databaseID)
	metrics.RecordNotionQuery(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("notion query failed: %w", err)
	}

	schema := s.schemas.GetSchema()
	normalizer := NewNormalizer(schema.Properties)

	items := make([]Item, 0, len(resp.Results))
	for _, page := range resp.Results {
		if item, ok := normalizer.Run(page); ok {
			items = append(items, item)
		}
	}
	discarded := len(resp.Results) - len(items)

	kept := s.filterer.Run(items, schema.Filters)
	filtered := len(items) - len(kept)

	metrics.RecordFeedAssembly(len(kept), discarded, filtered)
	slog.Debug("Feed assembled",
		"records", len(resp.Results),
		"items", len(kept),
		"discarded", discarded,
		"filtered", filtered,
		"duration", time.Since(start))

	return kept, nil
}

// Fetch returns the assembled items sorted by date, most recent first.
func (s *Service) Fetch(ctx context.Context) ([]Item, error) {
	items, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	SortByDate(items)
	return items, nil
}
