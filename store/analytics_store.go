package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"portfolio/api/activity"
	"portfolio/api/database"
	"portfolio/api/models"
)

// AnalyticsStore records blog page views in ClickHouse and reads them back
// as per-day counts for the activity engine.
type AnalyticsStore struct {
	DB *database.ClickHouseClient
}

func NewAnalyticsStore(chClient *database.ClickHouseClient) *AnalyticsStore {
	return &AnalyticsStore{
		DB: chClient,
	}
}

func (s *AnalyticsStore) InsertBlogViews(ctx context.Context, events []models.BlogViewEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Column order must match the blog_views table.
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO blog_views (
			event_id, blog_id, timestamp, referrer, user_agent, ip_address
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.EventID,
			event.BlogID,
			event.Timestamp,
			event.Referrer,
			event.UserAgent,
			event.IPAddress,
		)
		if err != nil {
			log.Error().Err(err).Str("event_id", event.EventID).Msg("error appending view to batch")
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Debug().Int("count", len(events)).Msg("inserted blog view events")
	return nil
}

// DailyViews returns one entry per UTC day with at least one view in
// [start, end]. An empty blogID counts views across all blogs.
func (s *AnalyticsStore) DailyViews(ctx context.Context, blogID string, start, end time.Time) ([]activity.Entry, error) {
	whereClause := "WHERE timestamp >= ? AND timestamp <= ?"
	args := []interface{}{start, end}
	if blogID != "" {
		whereClause += " AND blog_id = ?"
		args = append(args, blogID)
	}

	query := fmt.Sprintf(`
		SELECT toUnixTimestamp(toStartOfDay(timestamp, 'UTC')) AS day, count() AS views
		FROM blog_views
		%s
		GROUP BY day
		ORDER BY day ASC
	`, whereClause)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily views: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var (
			day   uint32
			views uint64
		)
		if err := rows.Scan(&day, &views); err != nil {
			log.Error().Err(err).Msg("error scanning daily views row")
			continue
		}
		entries = append(entries, activity.Entry{Timestamp: int64(day), Count: int(views)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during daily views query: %w", err)
	}

	return entries, nil
}

func (s *AnalyticsStore) TopBlogs(ctx context.Context, start, end time.Time, limit uint64) ([]models.TopBlogResult, error) {
	if limit == 0 {
		limit = 10
	}

	query := `
		SELECT blog_id, count() AS views
		FROM blog_views
		WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY blog_id
		ORDER BY views DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top blogs: %w", err)
	}
	defer rows.Close()

	results := []models.TopBlogResult{}
	for rows.Next() {
		var r models.TopBlogResult
		if err := rows.Scan(&r.BlogID, &r.Views); err != nil {
			log.Error().Err(err).Msg("error scanning top blogs row")
			continue
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for top blogs: %w", err)
	}

	return results, nil
}
