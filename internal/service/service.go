package service

import (
	"context"
	"log/slog"

	"github.com/researchhub/researchhub-service/internal/domain"
	"github.com/researchhub/researchhub-service/internal/record"
)

// activityFeedLimit caps the number of rows the activity endpoint returns.
const activityFeedLimit = 50

// ActivityEntry carries one audit row to be appended to the activity log.
type ActivityEntry struct {
	Type          domain.ActivityType
	UserName      string
	CandidateName string
	OldStatus     string
	NewStatus     string
	InsightTitle  string
}

// Repository defines required storage methods to satisfy business flows.
type Repository interface {
	ListCandidates(ctx context.Context) ([]record.RawCandidate, error)
	GetCandidate(ctx context.Context, id string) (record.RawCandidate, error)
	CreateCandidate(ctx context.Context, p record.RawCandidatePatch) (record.RawCandidate, error)
	UpdateCandidate(ctx context.Context, id string, p record.RawCandidatePatch) (record.RawCandidate, error)
	DeleteCandidate(ctx context.Context, id string) error

	ListSessions(ctx context.Context) ([]record.RawSession, error)
	GetSession(ctx context.Context, id string) (record.RawSession, error)
	CreateSession(ctx context.Context, p record.RawSessionPatch) (record.RawSession, error)
	UpdateSession(ctx context.Context, id string, p record.RawSessionPatch) (record.RawSession, error)

	ListInsights(ctx context.Context) ([]record.RawInsight, error)
	GetInsight(ctx context.Context, id string) (record.RawInsight, error)
	CreateInsight(ctx context.Context, p record.RawInsightPatch) (record.RawInsight, error)
	UpdateInsight(ctx context.Context, id string, p record.RawInsightPatch) (record.RawInsight, error)

	ListRecordings(ctx context.Context) ([]record.RawRecording, error)
	CreateRecording(ctx context.Context, p record.RawRecordingPatch) (record.RawRecording, error)

	ListUsers(ctx context.Context) ([]record.RawUser, error)
	CreateUser(ctx context.Context, p record.RawUserPatch) (record.RawUser, error)
	UpdateUser(ctx context.Context, id string, p record.RawUserPatch) (record.RawUser, error)

	ListActivity(ctx context.Context, limit int) ([]record.RawActivity, error)
	InsertActivity(ctx context.Context, e ActivityEntry) error

	ListDepartments(ctx context.Context) ([]record.RawDepartment, error)
	ListTeams(ctx context.Context) ([]record.RawTeam, error)

	DashboardStats(ctx context.Context) (record.RawStats, error)
}

// Service orchestrates repository calls and derives activity-log entries for
// the tracked state transitions.
type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCandidates(ctx context.Context) ([]record.RawCandidate, error) {
	return s.repo.ListCandidates(ctx)
}

func (s *Service) GetCandidate(ctx context.Context, id string) (record.RawCandidate, error) {
	return s.repo.GetCandidate(ctx, id)
}

func (s *Service) CreateCandidate(ctx context.Context, p record.RawCandidatePatch) (record.RawCandidate, error) {
	created, err := s.repo.CreateCandidate(ctx, p)
	if err != nil {
		return record.RawCandidate{}, err
	}

	s.logActivity(ctx, ActivityEntry{
		Type:          domain.ActivityCandidateAdded,
		UserName:      actor(p.CurrentUser),
		CandidateName: created.Name,
	})

	return created, nil
}

// UpdateCandidate applies a partial update and appends a status_changed
// entry when the research status actually moves to a new value.
func (s *Service) UpdateCandidate(ctx context.Context, id string, p record.RawCandidatePatch) (record.RawCandidate, error) {
	old, err := s.repo.GetCandidate(ctx, id)
	if err != nil {
		return record.RawCandidate{}, err
	}

	updated, err := s.repo.UpdateCandidate(ctx, id, p)
	if err != nil {
		return record.RawCandidate{}, err
	}

	if p.ResearchStatus != nil && *p.ResearchStatus != "" && old.ResearchStatus != *p.ResearchStatus {
		s.logActivity(ctx, ActivityEntry{
			Type:          domain.ActivityStatusChanged,
			UserName:      actor(p.CurrentUser),
			CandidateName: updated.Name,
			OldStatus:     old.ResearchStatus,
			NewStatus:     *p.ResearchStatus,
		})
	}

	return updated, nil
}

func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	return s.repo.DeleteCandidate(ctx, id)
}

func (s *Service) ListSessions(ctx context.Context) ([]record.RawSession, error) {
	return s.repo.ListSessions(ctx)
}

func (s *Service) GetSession(ctx context.Context, id string) (record.RawSession, error) {
	return s.repo.GetSession(ctx, id)
}

func (s *Service) CreateSession(ctx context.Context, p record.RawSessionPatch) (record.RawSession, error) {
	created, err := s.repo.CreateSession(ctx, p)
	if err != nil {
		return record.RawSession{}, err
	}

	// The entry names the candidate; a dangling candidate id just skips the log.
	if candidate, err := s.repo.GetCandidate(ctx, created.CandidateID); err == nil {
		s.logActivity(ctx, ActivityEntry{
			Type:          domain.ActivitySessionScheduled,
			UserName:      actor(p.CurrentUser),
			CandidateName: candidate.Name,
		})
	}

	return created, nil
}

func (s *Service) UpdateSession(ctx context.Context, id string, p record.RawSessionPatch) (record.RawSession, error) {
	return s.repo.UpdateSession(ctx, id, p)
}

func (s *Service) ListInsights(ctx context.Context) ([]record.RawInsight, error) {
	return s.repo.ListInsights(ctx)
}

func (s *Service) CreateInsight(ctx context.Context, p record.RawInsightPatch) (record.RawInsight, error) {
	created, err := s.repo.CreateInsight(ctx, p)
	if err != nil {
		return record.RawInsight{}, err
	}

	s.logActivity(ctx, ActivityEntry{
		Type:         domain.ActivityInsightCreated,
		UserName:     actor(p.CurrentUser),
		InsightTitle: created.Title,
	})

	return created, nil
}

// UpdateInsight applies a partial update and appends an insight_resolved
// entry only on a transition into Resolved.
func (s *Service) UpdateInsight(ctx context.Context, id string, p record.RawInsightPatch) (record.RawInsight, error) {
	old, err := s.repo.GetInsight(ctx, id)
	if err != nil {
		return record.RawInsight{}, err
	}

	updated, err := s.repo.UpdateInsight(ctx, id, p)
	if err != nil {
		return record.RawInsight{}, err
	}

	resolved := domain.InsightResolved.String()
	if p.Status != nil && *p.Status == resolved && old.Status != resolved {
		s.logActivity(ctx, ActivityEntry{
			Type:         domain.ActivityInsightResolved,
			UserName:     actor(p.CurrentUser),
			InsightTitle: updated.Title,
		})
	}

	return updated, nil
}

func (s *Service) ListRecordings(ctx context.Context) ([]record.RawRecording, error) {
	return s.repo.ListRecordings(ctx)
}

func (s *Service) CreateRecording(ctx context.Context, p record.RawRecordingPatch) (record.RawRecording, error) {
	return s.repo.CreateRecording(ctx, p)
}

func (s *Service) ListUsers(ctx context.Context) ([]record.RawUser, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) CreateUser(ctx context.Context, p record.RawUserPatch) (record.RawUser, error) {
	return s.repo.CreateUser(ctx, p)
}

func (s *Service) UpdateUser(ctx context.Context, id string, p record.RawUserPatch) (record.RawUser, error) {
	return s.repo.UpdateUser(ctx, id, p)
}

func (s *Service) ListActivity(ctx context.Context) ([]record.RawActivity, error) {
	return s.repo.ListActivity(ctx, activityFeedLimit)
}

func (s *Service) ListDepartments(ctx context.Context) ([]record.RawDepartment, error) {
	return s.repo.ListDepartments(ctx)
}

func (s *Service) ListTeams(ctx context.Context) ([]record.RawTeam, error) {
	return s.repo.ListTeams(ctx)
}

func (s *Service) DashboardStats(ctx context.Context) (record.RawStats, error) {
	return s.repo.DashboardStats(ctx)
}

// logActivity appends an audit row. The write is best-effort: the entity
// mutation already succeeded, so a failed log entry must not fail the call.
func (s *Service) logActivity(ctx context.Context, e ActivityEntry) {
	if err := s.repo.InsertActivity(ctx, e); err != nil {
		slog.Warn("activity log write failed",
			slog.String("type", e.Type.String()),
			slog.String("error", err.Error()))
	}
}

func actor(currentUser string) string {
	if currentUser == "" {
		return "System"
	}
	return currentUser
}
