package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/researchhub/researchhub-service/internal/record"
)

type refRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func (s *Store) ListDepartments(ctx context.Context) ([]record.RawDepartment, error) {
	var rows []refRow
	if err := pgxscan.Select(ctx, s.pool, &rows,
		`SELECT id, name FROM departments ORDER BY name`); err != nil {
		return nil, err
	}

	departments := make([]record.RawDepartment, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, record.RawDepartment{ID: row.ID, Name: row.Name})
	}
	return departments, nil
}

func (s *Store) ListTeams(ctx context.Context) ([]record.RawTeam, error) {
	var rows []refRow
	if err := pgxscan.Select(ctx, s.pool, &rows,
		`SELECT id, name FROM teams ORDER BY name`); err != nil {
		return nil, err
	}

	teams := make([]record.RawTeam, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, record.RawTeam{ID: row.ID, Name: row.Name})
	}
	return teams, nil
}
