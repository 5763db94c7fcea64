// Package appstate keeps a client-side snapshot of the research tracking
// domain: one initial load, then locally merged mutations so readers never
// need a full refetch.
package appstate

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/researchhub/researchhub-service/internal/domain"
	"github.com/researchhub/researchhub-service/internal/record"
)

// Gateway is the remote API surface the store depends on. *client.Client
// satisfies it.
type Gateway interface {
	GetCandidates(ctx context.Context) ([]record.RawCandidate, error)
	GetSessions(ctx context.Context) ([]record.RawSession, error)
	GetInsights(ctx context.Context) ([]record.RawInsight, error)
	GetUsers(ctx context.Context) ([]record.RawUser, error)
	GetActivity(ctx context.Context) ([]record.RawActivity, error)
	GetDepartments(ctx context.Context) ([]record.RawDepartment, error)
	GetTeams(ctx context.Context) ([]record.RawTeam, error)
	GetRecordings(ctx context.Context) ([]record.RawRecording, error)

	CreateCandidate(ctx context.Context, p record.RawCandidatePatch) (record.RawCandidate, error)
	UpdateCandidate(ctx context.Context, id string, p record.RawCandidatePatch) (record.RawCandidate, error)
	DeleteCandidate(ctx context.Context, id string) error

	CreateSession(ctx context.Context, p record.RawSessionPatch) (record.RawSession, error)
	UpdateSession(ctx context.Context, id string, p record.RawSessionPatch) (record.RawSession, error)

	CreateInsight(ctx context.Context, p record.RawInsightPatch) (record.RawInsight, error)
	UpdateInsight(ctx context.Context, id string, p record.RawInsightPatch) (record.RawInsight, error)

	CreateUser(ctx context.Context, p record.RawUserPatch) (record.RawUser, error)
	UpdateUser(ctx context.Context, id string, p record.RawUserPatch) (record.RawUser, error)

	CreateRecording(ctx context.Context, p record.RawRecordingPatch) (record.RawRecording, error)

	GetDashboardStats(ctx context.Context) (record.RawStats, error)
}

// staticProducts is the fixed product reference list.
var staticProducts = []domain.Product{
	{ID: "1", Name: "GWE", Features: []string{"Workflow Builder", "Templates", "Glossary", "Tags"}},
	{ID: "2", Name: "Auto builder", Features: []string{"Shared Configuration", "Templates", "Modal Interface"}},
	{ID: "3", Name: "Voice AIE", Features: []string{"Voice Recognition", "Configuration", "Knowledge Search"}},
	{ID: "4", Name: "Doc writer", Features: []string{"Document Generation", "Templates", "Formatting"}},
}

// Store holds the loaded snapshot. Mutations call the gateway first and
// merge the authoritative response into the snapshot on success, so local
// state never diverges from what the server accepted.
type Store struct {
	gw          Gateway
	currentUser string

	mu          sync.RWMutex
	loading     bool
	loadErr     error
	candidates  []domain.Candidate
	sessions    []domain.Session
	insights    []domain.Insight
	users       []domain.User
	activity    []domain.ActivityItem
	recordings  []domain.Recording
	departments []domain.Department
	teams       []domain.Team
}

// New builds an empty store. currentUser is the display name attributed to
// mutations in the activity log.
func New(gw Gateway, currentUser string) *Store {
	return &Store{gw: gw, currentUser: currentUser, loading: true}
}

// Initialize loads the whole snapshot in parallel. Recordings are not part
// of the initial load; RefreshRecordings pulls them on demand.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.loadErr = nil
	s.mu.Unlock()

	var (
		candidates  []domain.Candidate
		sessions    []domain.Session
		insights    []domain.Insight
		users       []domain.User
		activity    []domain.ActivityItem
		departments []domain.Department
		teams       []domain.Team
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raws, err := s.gw.GetCandidates(gctx)
		if err != nil {
			return err
		}
		candidates, err = transformAll(raws, record.ToCandidate)
		return err
	})
	g.Go(func() error {
		raws, err := s.gw.GetSessions(gctx)
		if err != nil {
			return err
		}
		sessions, err = transformAll(raws, record.ToSession)
		return err
	})
	g.Go(func() error {
		raws, err := s.gw.GetInsights(gctx)
		if err != nil {
			return err
		}
		insights, err = transformAll(raws, record.ToInsight)
		return err
	})
	g.Go(func() error {
		raws, err := s.gw.GetUsers(gctx)
		if err != nil {
			return err
		}
		users, err = transformAll(raws, record.ToUser)
		return err
	})
	g.Go(func() error {
		raws, err := s.gw.GetActivity(gctx)
		if err != nil {
			return err
		}
		activity, err = transformAll(raws, record.ToActivity)
		return err
	})
	g.Go(func() error {
		raws, err := s.gw.GetDepartments(gctx)
		if err != nil {
			return err
		}
		departments = make([]domain.Department, 0, len(raws))
		for _, raw := range raws {
			departments = append(departments, domain.Department{ID: raw.ID, Name: raw.Name})
		}
		return nil
	})
	g.Go(func() error {
		raws, err := s.gw.GetTeams(gctx)
		if err != nil {
			return err
		}
		teams = make([]domain.Team, 0, len(raws))
		for _, raw := range raws {
			teams = append(teams, domain.Team{ID: raw.ID, Name: raw.Name})
		}
		return nil
	})

	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.loadErr = err
		return err
	}
	s.candidates = candidates
	s.sessions = sessions
	s.insights = insights
	s.users = users
	s.activity = activity
	s.departments = departments
	s.teams = teams
	return nil
}

// Retry re-runs the initial load after a failure.
func (s *Store) Retry(ctx context.Context) error {
	return s.Initialize(ctx)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the initial-load error, nil once a load has succeeded.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Store) CurrentUser() string {
	return s.currentUser
}

func (s *Store) Candidates() []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.candidates)
}

func (s *Store) Candidate(id string) (domain.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.candidates {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Candidate{}, false
}

func (s *Store) Sessions() []domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sessions)
}

func (s *Store) Insights() []domain.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.insights)
}

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *Store) Activity() []domain.ActivityItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.activity)
}

func (s *Store) Recordings() []domain.Recording {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recordings)
}

func (s *Store) Departments() []domain.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.departments)
}

func (s *Store) Teams() []domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.teams)
}

// Products returns the static product reference list.
func (s *Store) Products() []domain.Product {
	return slices.Clone(staticProducts)
}

// AddCandidate creates a candidate and head-inserts the stored result, so
// the newest entry lists first.
func (s *Store) AddCandidate(ctx context.Context, p domain.CandidatePatch) (domain.Candidate, error) {
	raw := record.ToRawCandidatePatch(p, s.departmentID(p.Department))
	raw.CurrentUser = s.currentUser

	created, err := s.gw.CreateCandidate(ctx, raw)
	if err != nil {
		return domain.Candidate{}, err
	}
	candidate, err := record.ToCandidate(&created)
	if err != nil {
		return domain.Candidate{}, err
	}

	s.mu.Lock()
	s.candidates = append([]domain.Candidate{candidate}, s.candidates...)
	s.mu.Unlock()

	s.refreshActivity(ctx)
	return candidate, nil
}

func (s *Store) UpdateCandidate(ctx context.Context, id string, p domain.CandidatePatch) (domain.Candidate, error) {
	prev, hadPrev := s.Candidate(id)

	raw := record.ToRawCandidatePatch(p, s.departmentID(p.Department))
	raw.CurrentUser = s.currentUser

	updated, err := s.gw.UpdateCandidate(ctx, id, raw)
	if err != nil {
		return domain.Candidate{}, err
	}
	candidate, err := record.ToCandidate(&updated)
	if err != nil {
		return domain.Candidate{}, err
	}

	s.mu.Lock()
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			candidate.Recordings = s.candidates[i].Recordings
			s.candidates[i] = candidate
			break
		}
	}
	s.mu.Unlock()

	// The server only logs status_changed when the status actually moves,
	// so a same-status update has no new entry to pull.
	if p.ResearchStatus != nil && (!hadPrev || prev.ResearchStatus != *p.ResearchStatus) {
		s.refreshActivity(ctx)
	}
	return candidate, nil
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	if err := s.gw.DeleteCandidate(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.candidates = slices.DeleteFunc(s.candidates, func(c domain.Candidate) bool {
		return c.ID == id
	})
	s.mu.Unlock()
	return nil
}

// AddSession creates a session, head-inserts it, and links its id onto the
// owning candidate.
func (s *Store) AddSession(ctx context.Context, p domain.SessionPatch) (domain.Session, error) {
	raw := record.ToRawSessionPatch(p)
	raw.CurrentUser = s.currentUser

	created, err := s.gw.CreateSession(ctx, raw)
	if err != nil {
		return domain.Session{}, err
	}
	session, err := record.ToSession(&created)
	if err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	s.sessions = append([]domain.Session{session}, s.sessions...)
	for i := range s.candidates {
		if s.candidates[i].ID == session.CandidateID {
			s.candidates[i].Sessions = append(s.candidates[i].Sessions, session.ID)
			break
		}
	}
	s.mu.Unlock()

	s.refreshActivity(ctx)
	return session, nil
}

func (s *Store) UpdateSession(ctx context.Context, id string, p domain.SessionPatch) (domain.Session, error) {
	raw := record.ToRawSessionPatch(p)
	raw.CurrentUser = s.currentUser

	updated, err := s.gw.UpdateSession(ctx, id, raw)
	if err != nil {
		return domain.Session{}, err
	}
	session, err := record.ToSession(&updated)
	if err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions[i] = session
			break
		}
	}
	s.mu.Unlock()
	return session, nil
}

func (s *Store) AddInsight(ctx context.Context, p domain.InsightPatch) (domain.Insight, error) {
	raw := record.ToRawInsightPatch(p, s.teamID(p.Team))
	raw.CurrentUser = s.currentUser

	created, err := s.gw.CreateInsight(ctx, raw)
	if err != nil {
		return domain.Insight{}, err
	}
	insight, err := record.ToInsight(&created)
	if err != nil {
		return domain.Insight{}, err
	}

	s.mu.Lock()
	s.insights = append([]domain.Insight{insight}, s.insights...)
	s.mu.Unlock()

	s.refreshActivity(ctx)
	return insight, nil
}

func (s *Store) UpdateInsight(ctx context.Context, id string, p domain.InsightPatch) (domain.Insight, error) {
	prevStatus := s.insightStatus(id)

	raw := record.ToRawInsightPatch(p, s.teamID(p.Team))
	raw.CurrentUser = s.currentUser

	updated, err := s.gw.UpdateInsight(ctx, id, raw)
	if err != nil {
		return domain.Insight{}, err
	}
	insight, err := record.ToInsight(&updated)
	if err != nil {
		return domain.Insight{}, err
	}

	s.mu.Lock()
	for i := range s.insights {
		if s.insights[i].ID == id {
			s.insights[i] = insight
			break
		}
	}
	s.mu.Unlock()

	// insight_resolved is logged only on a transition into Resolved.
	if p.Status != nil && *p.Status == domain.InsightResolved && prevStatus != domain.InsightResolved {
		s.refreshActivity(ctx)
	}
	return insight, nil
}

func (s *Store) insightStatus(id string) domain.InsightStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, i := range s.insights {
		if i.ID == id {
			return i.Status
		}
	}
	return ""
}

func (s *Store) AddUser(ctx context.Context, p domain.UserPatch) (domain.User, error) {
	created, err := s.gw.CreateUser(ctx, record.ToRawUserPatch(p, s.teamID(p.Team)))
	if err != nil {
		return domain.User{}, err
	}
	user, err := record.ToUser(&created)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	s.users = append([]domain.User{user}, s.users...)
	s.mu.Unlock()
	return user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, p domain.UserPatch) (domain.User, error) {
	updated, err := s.gw.UpdateUser(ctx, id, record.ToRawUserPatch(p, s.teamID(p.Team)))
	if err != nil {
		return domain.User{}, err
	}
	user, err := record.ToUser(&updated)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = user
			break
		}
	}
	s.mu.Unlock()
	return user, nil
}

// RefreshRecordings pulls the recording list and links each recording onto
// its candidate.
func (s *Store) RefreshRecordings(ctx context.Context) error {
	raws, err := s.gw.GetRecordings(ctx)
	if err != nil {
		return err
	}
	recordings, err := transformAll(raws, record.ToRecording)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordings = recordings
	for i := range s.candidates {
		s.candidates[i].Recordings = nil
	}
	for _, rec := range recordings {
		for i := range s.candidates {
			if s.candidates[i].ID == rec.CandidateID {
				s.candidates[i].Recordings = append(s.candidates[i].Recordings, rec)
				break
			}
		}
	}
	return nil
}

func (s *Store) AddRecording(ctx context.Context, p domain.RecordingPatch) (domain.Recording, error) {
	created, err := s.gw.CreateRecording(ctx, record.ToRawRecordingPatch(p))
	if err != nil {
		return domain.Recording{}, err
	}
	recording, err := record.ToRecording(&created)
	if err != nil {
		return domain.Recording{}, err
	}

	s.mu.Lock()
	s.recordings = append([]domain.Recording{recording}, s.recordings...)
	for i := range s.candidates {
		if s.candidates[i].ID == recording.CandidateID {
			s.candidates[i].Recordings = append(s.candidates[i].Recordings, recording)
			break
		}
	}
	s.mu.Unlock()
	return recording, nil
}

// Stats fetches the aggregate dashboard payload.
func (s *Store) Stats(ctx context.Context) (domain.DashboardStats, error) {
	raw, err := s.gw.GetDashboardStats(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return domain.DashboardStats{
		TotalCandidates:    raw.TotalCandidates,
		TotalSessions:      raw.TotalSessions,
		TotalInsights:      raw.TotalInsights,
		CandidatesByStatus: raw.CandidatesByStatus,
		SessionsByStatus:   raw.SessionsByStatus,
		InsightsByPriority: raw.InsightsByPriority,
	}, nil
}

// refreshActivity re-pulls the activity feed after a mutation that derives
// an entry server-side. Best-effort: the mutation already succeeded.
func (s *Store) refreshActivity(ctx context.Context) {
	raws, err := s.gw.GetActivity(ctx)
	if err != nil {
		slog.Warn("activity refresh failed", slog.String("error", err.Error()))
		return
	}
	activity, err := transformAll(raws, record.ToActivity)
	if err != nil {
		slog.Warn("activity refresh failed", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	s.activity = activity
	s.mu.Unlock()
}

// departmentID resolves a department display name against the loaded list.
// Unknown or nil names resolve to "", which leaves the column unset.
func (s *Store) departmentID(name *string) string {
	if name == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.departments {
		if d.Name == *name {
			return d.ID
		}
	}
	return ""
}

func (s *Store) teamID(name *string) string {
	if name == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teams {
		if t.Name == *name {
			return t.ID
		}
	}
	return ""
}

func transformAll[R, D any](raws []R, transform func(*R) (D, error)) ([]D, error) {
	out := make([]D, 0, len(raws))
	for i := range raws {
		d, err := transform(&raws[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
