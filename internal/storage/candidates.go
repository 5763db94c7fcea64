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

const candidateColumns = `c.id, c.name, d.id, d.name, c.title, c.location,
	to_char(c.date_of_joining, 'YYYY-MM-DD'),
	c.research_status, c.features_tested, c.user_type, c.notes,
	c.created_at, c.updated_at`

const selectCandidates = `SELECT ` + candidateColumns + `
	FROM candidates c
	LEFT JOIN departments d ON d.id = c.department_id`

func (s *Store) ListCandidates(ctx context.Context) ([]record.RawCandidate, error) {
	rows, err := s.pool.Query(ctx, selectCandidates+` ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []record.RawCandidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs, err := s.listSessionRefs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].Sessions = refs[candidates[i].ID]
	}

	return candidates, nil
}

func (s *Store) GetCandidate(ctx context.Context, id string) (record.RawCandidate, error) {
	candidateID, err := parseID(id, "candidate id")
	if err != nil {
		return record.RawCandidate{}, err
	}

	row := s.pool.QueryRow(ctx, selectCandidates+` WHERE c.id = $1`, candidateID)
	candidate, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawCandidate{}, domain.NewNotFoundError("candidate not found", err)
		}
		return record.RawCandidate{}, err
	}

	candidate.Sessions, err = s.listCandidateSessionRefs(ctx, candidateID.String())
	if err != nil {
		return record.RawCandidate{}, err
	}

	return candidate, nil
}

func (s *Store) CreateCandidate(ctx context.Context, p record.RawCandidatePatch) (record.RawCandidate, error) {
	if p.Name == nil || *p.Name == "" {
		return record.RawCandidate{}, domain.NewValidationError("name is required", nil)
	}

	query, args, err := psql.Insert("candidates").
		SetMap(candidatePatchMap(p)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return record.RawCandidate{}, err
	}

	var id string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return record.RawCandidate{}, domain.NewValidationError("department does not exist", err)
		}
		return record.RawCandidate{}, err
	}

	return s.GetCandidate(ctx, id)
}

func (s *Store) UpdateCandidate(ctx context.Context, id string, p record.RawCandidatePatch) (record.RawCandidate, error) {
	candidateID, err := parseID(id, "candidate id")
	if err != nil {
		return record.RawCandidate{}, err
	}

	builder := psql.Update("candidates").
		SetMap(candidatePatchMap(p)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": candidateID}).
		Suffix("RETURNING id")

	query, args, err := builder.ToSql()
	if err != nil {
		return record.RawCandidate{}, err
	}

	var returned string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&returned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawCandidate{}, domain.NewNotFoundError("candidate not found", err)
		}
		if isForeignKeyViolation(err) {
			return record.RawCandidate{}, domain.NewValidationError("department does not exist", err)
		}
		return record.RawCandidate{}, err
	}

	return s.GetCandidate(ctx, returned)
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	candidateID, err := parseID(id, "candidate id")
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, candidateID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewConflictError("candidate is referenced by other records", err)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("candidate not found", nil)
	}
	return nil
}

func scanCandidate(row pgx.Row) (record.RawCandidate, error) {
	var (
		c             record.RawCandidate
		deptID        sql.NullString
		deptName      sql.NullString
		title         sql.NullString
		location      sql.NullString
		dateOfJoining sql.NullString
		userType      sql.NullString
		notes         sql.NullString
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)
	err := row.Scan(&c.ID, &c.Name, &deptID, &deptName, &title, &location,
		&dateOfJoining, &c.ResearchStatus, &c.FeaturesTested, &userType, &notes,
		&createdAt, &updatedAt)
	if err != nil {
		return record.RawCandidate{}, err
	}

	if deptID.Valid {
		c.Department = &record.Ref{ID: deptID.String, Name: deptName.String}
	}
	c.Title = fromNull(title)
	c.Location = fromNull(location)
	c.DateOfJoining = fromNull(dateOfJoining)
	c.UserType = fromNull(userType)
	c.Notes = fromNull(notes)
	c.CreatedAt = formatNullTimestamp(createdAt)
	c.UpdatedAt = formatNullTimestamp(updatedAt)

	return c, nil
}

func candidatePatchMap(p record.RawCandidatePatch) map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.DepartmentID != nil {
		m["department_id"] = *p.DepartmentID
	}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Location != nil {
		m["location"] = *p.Location
	}
	if p.DateOfJoining != nil {
		m["date_of_joining"] = nullable(*p.DateOfJoining)
	}
	if p.ResearchStatus != nil {
		m["research_status"] = *p.ResearchStatus
	}
	if p.FeaturesTested != nil {
		m["features_tested"] = *p.FeaturesTested
	}
	if p.UserType != nil {
		m["user_type"] = *p.UserType
	}
	if p.Notes != nil {
		m["notes"] = *p.Notes
	}
	return m
}
