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

const selectUsers = `SELECT u.id, u.name, u.email, u.role, t.id, t.name, u.status,
	u.created_at, u.updated_at
	FROM users u
	LEFT JOIN teams t ON t.id = u.team_id`

func (s *Store) ListUsers(ctx context.Context) ([]record.RawUser, error) {
	rows, err := s.pool.Query(ctx, selectUsers+` ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []record.RawUser
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) GetUser(ctx context.Context, id string) (record.RawUser, error) {
	userID, err := parseID(id, "user id")
	if err != nil {
		return record.RawUser{}, err
	}

	row := s.pool.QueryRow(ctx, selectUsers+` WHERE u.id = $1`, userID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawUser{}, domain.NewNotFoundError("user not found", err)
		}
		return record.RawUser{}, err
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, p record.RawUserPatch) (record.RawUser, error) {
	if p.Name == nil || *p.Name == "" {
		return record.RawUser{}, domain.NewValidationError("name is required", nil)
	}
	if p.Email == nil || *p.Email == "" {
		return record.RawUser{}, domain.NewValidationError("email is required", nil)
	}
	if p.Role == nil {
		return record.RawUser{}, domain.NewValidationError("role is required", nil)
	}

	query, args, err := psql.Insert("users").
		SetMap(userPatchMap(p)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return record.RawUser{}, err
	}

	var id string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return record.RawUser{}, domain.NewConflictError("email already registered", err)
		}
		if isForeignKeyViolation(err) {
			return record.RawUser{}, domain.NewValidationError("team does not exist", err)
		}
		return record.RawUser{}, err
	}

	return s.GetUser(ctx, id)
}

func (s *Store) UpdateUser(ctx context.Context, id string, p record.RawUserPatch) (record.RawUser, error) {
	userID, err := parseID(id, "user id")
	if err != nil {
		return record.RawUser{}, err
	}

	query, args, err := psql.Update("users").
		SetMap(userPatchMap(p)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return record.RawUser{}, err
	}

	var returned string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&returned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawUser{}, domain.NewNotFoundError("user not found", err)
		}
		if isUniqueViolation(err) {
			return record.RawUser{}, domain.NewConflictError("email already registered", err)
		}
		if isForeignKeyViolation(err) {
			return record.RawUser{}, domain.NewValidationError("team does not exist", err)
		}
		return record.RawUser{}, err
	}

	return s.GetUser(ctx, returned)
}

func scanUser(row pgx.Row) (record.RawUser, error) {
	var (
		u         record.RawUser
		teamID    sql.NullString
		teamName  sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &teamID, &teamName,
		&u.Status, &createdAt, &updatedAt)
	if err != nil {
		return record.RawUser{}, err
	}

	if teamID.Valid {
		u.Team = &record.Ref{ID: teamID.String, Name: teamName.String}
	}
	u.CreatedAt = formatNullTimestamp(createdAt)
	u.UpdatedAt = formatNullTimestamp(updatedAt)

	return u, nil
}

func userPatchMap(p record.RawUserPatch) map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.Role != nil {
		m["role"] = *p.Role
	}
	if p.TeamID != nil {
		m["team_id"] = *p.TeamID
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	return m
}
