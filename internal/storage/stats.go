package postgres

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/researchhub/researchhub-service/internal/record"
)

// DashboardStats gathers the aggregate dashboard payload. The component
// queries are independent, so they run in parallel.
func (s *Store) DashboardStats(ctx context.Context) (record.RawStats, error) {
	stats := record.RawStats{
		CandidatesByStatus: map[string]int{},
		SessionsByStatus:   map[string]int{},
		InsightsByPriority: map[string]int{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.pool.QueryRow(gctx, `SELECT COUNT(*) FROM candidates`).
			Scan(&stats.TotalCandidates)
	})
	g.Go(func() error {
		return s.pool.QueryRow(gctx, `SELECT COUNT(*) FROM sessions`).
			Scan(&stats.TotalSessions)
	})
	g.Go(func() error {
		return s.pool.QueryRow(gctx, `SELECT COUNT(*) FROM insights WHERE status <> 'Resolved'`).
			Scan(&stats.TotalInsights)
	})
	g.Go(func() error {
		return s.countGroups(gctx,
			`SELECT research_status, COUNT(*) FROM candidates GROUP BY research_status`,
			stats.CandidatesByStatus)
	})
	g.Go(func() error {
		return s.countGroups(gctx,
			`SELECT status, COUNT(*) FROM sessions GROUP BY status`,
			stats.SessionsByStatus)
	})
	g.Go(func() error {
		return s.countGroups(gctx,
			`SELECT priority, COUNT(*) FROM insights WHERE status <> 'Resolved' GROUP BY priority`,
			stats.InsightsByPriority)
	})
	g.Go(func() error {
		recent, err := s.ListActivity(gctx, 10)
		if err != nil {
			return err
		}
		stats.RecentActivity = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return record.RawStats{}, err
	}
	return stats, nil
}

func (s *Store) countGroups(ctx context.Context, query string, dst map[string]int) error {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dst[key] = count
	}
	return rows.Err()
}
