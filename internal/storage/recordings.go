package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/researchhub/researchhub-service/internal/domain"
	"github.com/researchhub/researchhub-service/internal/record"
)

const selectRecordings = `SELECT r.id, r.title, r.url,
	to_char(r.recording_date, 'YYYY-MM-DD'),
	r.candidate_id, r.session_id, c.id, c.name, s.id, s.product, r.created_at
	FROM recordings r
	LEFT JOIN candidates c ON c.id = r.candidate_id
	LEFT JOIN sessions s ON s.id = r.session_id`

func (s *Store) ListRecordings(ctx context.Context) ([]record.RawRecording, error) {
	rows, err := s.pool.Query(ctx, selectRecordings+` ORDER BY r.recording_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []record.RawRecording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}
	return recordings, rows.Err()
}

func (s *Store) CreateRecording(ctx context.Context, p record.RawRecordingPatch) (record.RawRecording, error) {
	if p.Title == nil || *p.Title == "" {
		return record.RawRecording{}, domain.NewValidationError("title is required", nil)
	}
	if p.URL == nil || *p.URL == "" {
		return record.RawRecording{}, domain.NewValidationError("url is required", nil)
	}

	query, args, err := psql.Insert("recordings").
		SetMap(recordingPatchMap(p)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return record.RawRecording{}, err
	}

	var id string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return record.RawRecording{}, domain.NewValidationError("referenced candidate or session does not exist", err)
		}
		return record.RawRecording{}, err
	}

	return s.getRecording(ctx, id)
}

func (s *Store) getRecording(ctx context.Context, id string) (record.RawRecording, error) {
	row := s.pool.QueryRow(ctx, selectRecordings+` WHERE r.id = $1`, id)
	rec, err := scanRecording(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawRecording{}, domain.NewNotFoundError("recording not found", err)
		}
		return record.RawRecording{}, err
	}
	return rec, nil
}

func scanRecording(row pgx.Row) (record.RawRecording, error) {
	var (
		rec           record.RawRecording
		recordingDate sql.NullString
		candidateID   sql.NullString
		sessionID     sql.NullString
		candID        sql.NullString
		candName      sql.NullString
		sessID        sql.NullString
		sessProduct   sql.NullString
		createdAt     sql.NullTime
	)
	err := row.Scan(&rec.ID, &rec.Title, &rec.URL, &recordingDate,
		&candidateID, &sessionID, &candID, &candName, &sessID, &sessProduct,
		&createdAt)
	if err != nil {
		return record.RawRecording{}, err
	}

	rec.RecordingDate = fromNull(recordingDate)
	rec.CandidateID = fromNull(candidateID)
	rec.SessionID = fromNull(sessionID)
	if candID.Valid {
		rec.Candidate = &record.Ref{ID: candID.String, Name: candName.String}
	}
	if sessID.Valid {
		rec.Session = &record.SessionRef{ID: sessID.String, Product: fromNull(sessProduct)}
	}
	rec.CreatedAt = formatNullTimestamp(createdAt)

	return rec, nil
}

func recordingPatchMap(p record.RawRecordingPatch) map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.URL != nil {
		m["url"] = *p.URL
	}
	if p.RecordingDate != nil {
		m["recording_date"] = nullable(*p.RecordingDate)
	}
	if p.CandidateID != nil {
		m["candidate_id"] = nullable(*p.CandidateID)
	}
	if p.SessionID != nil {
		m["session_id"] = nullable(*p.SessionID)
	}
	return m
}
