package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/researchhub/researchhub-service/internal/domain"
	"github.com/researchhub/researchhub-service/internal/record"
)

const sessionColumns = `s.id, s.candidate_id, c.id, c.name, s.product,
	s.features_tested, s.moderator,
	to_char(s.session_date, 'YYYY-MM-DD'), to_char(s.session_time, 'HH24:MI'),
	s.duration, s.status, s.recording_link, s.session_notes,
	s.objectives, s.observations, s.quotes, s.created_at, s.updated_at`

const selectSessions = `SELECT ` + sessionColumns + `
	FROM sessions s
	LEFT JOIN candidates c ON c.id = s.candidate_id`

func (s *Store) ListSessions(ctx context.Context) ([]record.RawSession, error) {
	rows, err := s.pool.Query(ctx, selectSessions+` ORDER BY s.session_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []record.RawSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *Store) GetSession(ctx context.Context, id string) (record.RawSession, error) {
	sessionID, err := parseID(id, "session id")
	if err != nil {
		return record.RawSession{}, err
	}

	row := s.pool.QueryRow(ctx, selectSessions+` WHERE s.id = $1`, sessionID)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawSession{}, domain.NewNotFoundError("session not found", err)
		}
		return record.RawSession{}, err
	}
	return session, nil
}

func (s *Store) CreateSession(ctx context.Context, p record.RawSessionPatch) (record.RawSession, error) {
	if p.CandidateID == nil || *p.CandidateID == "" {
		return record.RawSession{}, domain.NewValidationError("candidate_id is required", nil)
	}

	query, args, err := psql.Insert("sessions").
		SetMap(sessionPatchMap(p)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return record.RawSession{}, err
	}

	var id string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return record.RawSession{}, domain.NewValidationError("candidate does not exist", err)
		}
		return record.RawSession{}, err
	}

	return s.GetSession(ctx, id)
}

func (s *Store) UpdateSession(ctx context.Context, id string, p record.RawSessionPatch) (record.RawSession, error) {
	sessionID, err := parseID(id, "session id")
	if err != nil {
		return record.RawSession{}, err
	}

	query, args, err := psql.Update("sessions").
		SetMap(sessionPatchMap(p)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sessionID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return record.RawSession{}, err
	}

	var returned string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&returned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawSession{}, domain.NewNotFoundError("session not found", err)
		}
		if isForeignKeyViolation(err) {
			return record.RawSession{}, domain.NewValidationError("candidate does not exist", err)
		}
		return record.RawSession{}, err
	}

	return s.GetSession(ctx, returned)
}

// listSessionRefs returns session id refs grouped by candidate, used to
// attach the derived session list to candidate reads.
func (s *Store) listSessionRefs(ctx context.Context) (map[string][]record.IDRef, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, candidate_id FROM sessions WHERE candidate_id IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make(map[string][]record.IDRef)
	for rows.Next() {
		var id, candidateID string
		if err := rows.Scan(&id, &candidateID); err != nil {
			return nil, err
		}
		refs[candidateID] = append(refs[candidateID], record.IDRef{ID: id})
	}
	return refs, rows.Err()
}

func (s *Store) listCandidateSessionRefs(ctx context.Context, candidateID string) ([]record.IDRef, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM sessions WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []record.IDRef
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		refs = append(refs, record.IDRef{ID: id})
	}
	return refs, rows.Err()
}

func scanSession(row pgx.Row) (record.RawSession, error) {
	var (
		sess          record.RawSession
		candidateID   sql.NullString
		candID        sql.NullString
		candName      sql.NullString
		product       sql.NullString
		moderator     sql.NullString
		sessionDate   sql.NullString
		sessionTime   sql.NullString
		duration      sql.NullString
		recordingLink sql.NullString
		sessionNotes  sql.NullString
		objectives    sql.NullString
		observations  sql.NullString
		quotes        sql.NullString
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)
	err := row.Scan(&sess.ID, &candidateID, &candID, &candName, &product,
		&sess.FeaturesTested, &moderator, &sessionDate, &sessionTime,
		&duration, &sess.Status, &recordingLink, &sessionNotes,
		&objectives, &observations, &quotes, &createdAt, &updatedAt)
	if err != nil {
		return record.RawSession{}, err
	}

	sess.CandidateID = fromNull(candidateID)
	if candID.Valid {
		sess.Candidate = &record.Ref{ID: candID.String, Name: candName.String}
	}
	sess.Product = fromNull(product)
	sess.Moderator = fromNull(moderator)
	sess.SessionDate = fromNull(sessionDate)
	sess.SessionTime = fromNull(sessionTime)
	sess.Duration = fromNull(duration)
	sess.RecordingLink = fromNull(recordingLink)
	sess.SessionNotes = fromNull(sessionNotes)
	sess.Objectives = fromNull(objectives)
	sess.Observations = fromNull(observations)
	sess.Quotes = fromNull(quotes)
	sess.CreatedAt = formatNullTimestamp(createdAt)
	sess.UpdatedAt = formatNullTimestamp(updatedAt)

	return sess, nil
}

func sessionPatchMap(p record.RawSessionPatch) map[string]any {
	m := map[string]any{}
	if p.CandidateID != nil {
		m["candidate_id"] = *p.CandidateID
	}
	if p.Product != nil {
		m["product"] = *p.Product
	}
	if p.FeaturesTested != nil {
		m["features_tested"] = *p.FeaturesTested
	}
	if p.Moderator != nil {
		m["moderator"] = *p.Moderator
	}
	if p.SessionDate != nil {
		m["session_date"] = nullable(*p.SessionDate)
	}
	if p.SessionTime != nil {
		m["session_time"] = nullable(*p.SessionTime)
	}
	if p.Duration != nil {
		m["duration"] = *p.Duration
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.RecordingLink != nil {
		m["recording_link"] = *p.RecordingLink
	}
	if p.SessionNotes != nil {
		m["session_notes"] = *p.SessionNotes
	}
	if p.Objectives != nil {
		m["objectives"] = *p.Objectives
	}
	if p.Observations != nil {
		m["observations"] = *p.Observations
	}
	if p.Quotes != nil {
		m["quotes"] = *p.Quotes
	}
	return m
}
