package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/researchhub/researchhub-service/internal/domain"
	"github.com/researchhub/researchhub-service/internal/record"
	"github.com/researchhub/researchhub-service/internal/service"
)

type activityRow struct {
	ID            string    `db:"id"`
	ActivityType  string    `db:"activity_type"`
	UserName      string    `db:"user_name"`
	CandidateName *string   `db:"candidate_name"`
	OldStatus     *string   `db:"old_status"`
	NewStatus     *string   `db:"new_status"`
	InsightTitle  *string   `db:"insight_title"`
	CreatedAt     time.Time `db:"created_at"`
}

// ListActivity returns the newest activity rows first.
func (s *Store) ListActivity(ctx context.Context, limit int) ([]record.RawActivity, error) {
	query, args, err := psql.
		Select("id", "activity_type", "user_name", "candidate_name",
			"old_status", "new_status", "insight_title", "created_at").
		From("activity_logs").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []activityRow
	if err := pgxscan.Select(ctx, s.pool, &rows, query, args...); err != nil {
		return nil, err
	}

	items := make([]record.RawActivity, 0, len(rows))
	for _, row := range rows {
		items = append(items, record.RawActivity{
			ID:            row.ID,
			ActivityType:  row.ActivityType,
			UserName:      row.UserName,
			CandidateName: deref(row.CandidateName),
			OldStatus:     deref(row.OldStatus),
			NewStatus:     deref(row.NewStatus),
			InsightTitle:  deref(row.InsightTitle),
			CreatedAt:     formatTimestamp(row.CreatedAt),
		})
	}
	return items, nil
}

func (s *Store) InsertActivity(ctx context.Context, e service.ActivityEntry) error {
	// The activity_type column carries a CHECK constraint; reject unknown
	// types before the round trip.
	if !e.Type.IsValid() {
		return domain.NewValidationError("invalid activity type", nil)
	}

	query, args, err := psql.Insert("activity_logs").
		SetMap(map[string]any{
			"activity_type":  e.Type,
			"user_name":      e.UserName,
			"candidate_name": nullable(e.CandidateName),
			"old_status":     nullable(e.OldStatus),
			"new_status":     nullable(e.NewStatus),
			"insight_title":  nullable(e.InsightTitle),
		}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, query, args...)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
