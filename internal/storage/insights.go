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

const insightColumns = `i.id, i.title, i.description, i.user_interviewed,
	c.id, c.name, i.product, i.status, i.triage_status, i.priority,
	i.category, t.id, t.name, i.effort, i.attachments, i.tags, i.assignee,
	i.created_at, i.updated_at`

const selectInsights = `SELECT ` + insightColumns + `
	FROM insights i
	LEFT JOIN candidates c ON c.id = i.user_interviewed
	LEFT JOIN teams t ON t.id = i.team_id`

func (s *Store) ListInsights(ctx context.Context) ([]record.RawInsight, error) {
	rows, err := s.pool.Query(ctx, selectInsights+` ORDER BY i.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []record.RawInsight
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	return insights, rows.Err()
}

func (s *Store) GetInsight(ctx context.Context, id string) (record.RawInsight, error) {
	insightID, err := parseID(id, "insight id")
	if err != nil {
		return record.RawInsight{}, err
	}

	row := s.pool.QueryRow(ctx, selectInsights+` WHERE i.id = $1`, insightID)
	insight, err := scanInsight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawInsight{}, domain.NewNotFoundError("insight not found", err)
		}
		return record.RawInsight{}, err
	}
	return insight, nil
}

func (s *Store) CreateInsight(ctx context.Context, p record.RawInsightPatch) (record.RawInsight, error) {
	if p.Title == nil || *p.Title == "" {
		return record.RawInsight{}, domain.NewValidationError("title is required", nil)
	}

	m := insightPatchMap(p)
	// priority carries a NOT NULL constraint without a column default.
	if _, ok := m["priority"]; !ok {
		m["priority"] = domain.PriorityP2.String()
	}
	if _, ok := m["category"]; !ok {
		m["category"] = domain.CategoryOther.String()
	}

	query, args, err := psql.Insert("insights").
		SetMap(m).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return record.RawInsight{}, err
	}

	var id string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return record.RawInsight{}, domain.NewValidationError("referenced candidate or team does not exist", err)
		}
		return record.RawInsight{}, err
	}

	return s.GetInsight(ctx, id)
}

func (s *Store) UpdateInsight(ctx context.Context, id string, p record.RawInsightPatch) (record.RawInsight, error) {
	insightID, err := parseID(id, "insight id")
	if err != nil {
		return record.RawInsight{}, err
	}

	query, args, err := psql.Update("insights").
		SetMap(insightPatchMap(p)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": insightID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return record.RawInsight{}, err
	}

	var returned string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&returned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.RawInsight{}, domain.NewNotFoundError("insight not found", err)
		}
		if isForeignKeyViolation(err) {
			return record.RawInsight{}, domain.NewValidationError("referenced candidate or team does not exist", err)
		}
		return record.RawInsight{}, err
	}

	return s.GetInsight(ctx, returned)
}

func scanInsight(row pgx.Row) (record.RawInsight, error) {
	var (
		ins             record.RawInsight
		description     sql.NullString
		userInterviewed sql.NullString
		candID          sql.NullString
		candName        sql.NullString
		product         sql.NullString
		teamID          sql.NullString
		teamName        sql.NullString
		effort          sql.NullString
		assignee        sql.NullString
		createdAt       sql.NullTime
		updatedAt       sql.NullTime
	)
	err := row.Scan(&ins.ID, &ins.Title, &description, &userInterviewed,
		&candID, &candName, &product, &ins.Status, &ins.TriageStatus,
		&ins.Priority, &ins.Category, &teamID, &teamName, &effort,
		&ins.Attachments, &ins.Tags, &assignee, &createdAt, &updatedAt)
	if err != nil {
		return record.RawInsight{}, err
	}

	ins.Description = fromNull(description)
	ins.UserInterviewed = fromNull(userInterviewed)
	if candID.Valid {
		ins.Candidate = &record.Ref{ID: candID.String, Name: candName.String}
	}
	ins.Product = fromNull(product)
	if teamID.Valid {
		ins.Team = &record.Ref{ID: teamID.String, Name: teamName.String}
	}
	ins.Effort = fromNull(effort)
	ins.Assignee = fromNull(assignee)
	ins.CreatedAt = formatNullTimestamp(createdAt)
	ins.UpdatedAt = formatNullTimestamp(updatedAt)

	return ins, nil
}

func insightPatchMap(p record.RawInsightPatch) map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.UserInterviewed != nil {
		m["user_interviewed"] = nullable(*p.UserInterviewed)
	}
	if p.Product != nil {
		m["product"] = *p.Product
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.TriageStatus != nil {
		m["triage_status"] = *p.TriageStatus
	}
	if p.Priority != nil {
		m["priority"] = *p.Priority
	}
	if p.Category != nil {
		m["category"] = *p.Category
	}
	if p.TeamID != nil {
		m["team_id"] = *p.TeamID
	}
	if p.Effort != nil {
		m["effort"] = *p.Effort
	}
	if p.Attachments != nil {
		m["attachments"] = *p.Attachments
	}
	if p.Tags != nil {
		m["tags"] = *p.Tags
	}
	if p.Assignee != nil {
		m["assignee"] = *p.Assignee
	}
	return m
}
