package appstate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/researchhub-service/internal/domain"
	"github.com/researchhub/researchhub-service/internal/record"
)

// fakeGateway is an in-memory stand-in for the remote API. Mutations apply
// the same activity derivation the server performs, so the store's merge
// and refresh behavior can be checked end to end.
type fakeGateway struct {
	candidates  []record.RawCandidate
	sessions    []record.RawSession
	insights    []record.RawInsight
	users       []record.RawUser
	activity    []record.RawActivity
	departments []record.RawDepartment
	teams       []record.RawTeam
	recordings  []record.RawRecording

	failCandidates bool
	failActivity   bool
	failCreate     bool

	activityFetches int

	nextID int
}

func (f *fakeGateway) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeGateway) logActivity(kind, user, candidateName, oldStatus, newStatus, insightTitle string) {
	entry := record.RawActivity{
		ID:            f.id("a"),
		ActivityType:  kind,
		UserName:      user,
		CandidateName: candidateName,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		InsightTitle:  insightTitle,
		CreatedAt:     "2025-03-10T12:00:00Z",
	}
	f.activity = append([]record.RawActivity{entry}, f.activity...)
}

func (f *fakeGateway) GetCandidates(ctx context.Context) ([]record.RawCandidate, error) {
	if f.failCandidates {
		return nil, errors.New("candidates unavailable")
	}
	return f.candidates, nil
}

func (f *fakeGateway) GetSessions(ctx context.Context) ([]record.RawSession, error) {
	return f.sessions, nil
}

func (f *fakeGateway) GetInsights(ctx context.Context) ([]record.RawInsight, error) {
	return f.insights, nil
}

func (f *fakeGateway) GetUsers(ctx context.Context) ([]record.RawUser, error) {
	return f.users, nil
}

func (f *fakeGateway) GetActivity(ctx context.Context) ([]record.RawActivity, error) {
	f.activityFetches++
	if f.failActivity {
		return nil, errors.New("activity unavailable")
	}
	return f.activity, nil
}

func (f *fakeGateway) GetDepartments(ctx context.Context) ([]record.RawDepartment, error) {
	return f.departments, nil
}

func (f *fakeGateway) GetTeams(ctx context.Context) ([]record.RawTeam, error) {
	return f.teams, nil
}

func (f *fakeGateway) GetRecordings(ctx context.Context) ([]record.RawRecording, error) {
	return f.recordings, nil
}

func (f *fakeGateway) CreateCandidate(ctx context.Context, p record.RawCandidatePatch) (record.RawCandidate, error) {
	if f.failCreate {
		return record.RawCandidate{}, errors.New("create rejected")
	}
	c := record.RawCandidate{ID: f.id("c")}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ResearchStatus != nil {
		c.ResearchStatus = *p.ResearchStatus
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.DepartmentID != nil {
		name := ""
		for _, d := range f.departments {
			if d.ID == *p.DepartmentID {
				name = d.Name
			}
		}
		c.Department = &record.Ref{ID: *p.DepartmentID, Name: name}
	}
	f.candidates = append(f.candidates, c)
	f.logActivity("candidate_added", actorOr(p.CurrentUser), c.Name, "", "", "")
	return c, nil
}

func (f *fakeGateway) UpdateCandidate(ctx context.Context, id string, p record.RawCandidatePatch) (record.RawCandidate, error) {
	for i := range f.candidates {
		if f.candidates[i].ID != id {
			continue
		}
		old := f.candidates[i]
		if p.Name != nil {
			f.candidates[i].Name = *p.Name
		}
		if p.Notes != nil {
			f.candidates[i].Notes = *p.Notes
		}
		if p.ResearchStatus != nil {
			f.candidates[i].ResearchStatus = *p.ResearchStatus
			if old.ResearchStatus != *p.ResearchStatus {
				f.logActivity("status_changed", actorOr(p.CurrentUser),
					f.candidates[i].Name, old.ResearchStatus, *p.ResearchStatus, "")
			}
		}
		return f.candidates[i], nil
	}
	return record.RawCandidate{}, errors.New("candidate not found")
}

func (f *fakeGateway) DeleteCandidate(ctx context.Context, id string) error {
	for i := range f.candidates {
		if f.candidates[i].ID == id {
			f.candidates = append(f.candidates[:i], f.candidates[i+1:]...)
			return nil
		}
	}
	return errors.New("candidate not found")
}

func (f *fakeGateway) CreateSession(ctx context.Context, p record.RawSessionPatch) (record.RawSession, error) {
	s := record.RawSession{ID: f.id("s")}
	if p.CandidateID != nil {
		s.CandidateID = *p.CandidateID
	}
	if p.Product != nil {
		s.Product = *p.Product
	}
	f.sessions = append(f.sessions, s)
	for _, c := range f.candidates {
		if c.ID == s.CandidateID {
			f.logActivity("session_scheduled", actorOr(p.CurrentUser), c.Name, "", "", "")
		}
	}
	return s, nil
}

func (f *fakeGateway) UpdateSession(ctx context.Context, id string, p record.RawSessionPatch) (record.RawSession, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			if p.Status != nil {
				f.sessions[i].Status = *p.Status
			}
			return f.sessions[i], nil
		}
	}
	return record.RawSession{}, errors.New("session not found")
}

func (f *fakeGateway) CreateInsight(ctx context.Context, p record.RawInsightPatch) (record.RawInsight, error) {
	i := record.RawInsight{ID: f.id("i")}
	if p.Title != nil {
		i.Title = *p.Title
	}
	f.insights = append(f.insights, i)
	f.logActivity("insight_created", actorOr(p.CurrentUser), "", "", "", i.Title)
	return i, nil
}

func (f *fakeGateway) UpdateInsight(ctx context.Context, id string, p record.RawInsightPatch) (record.RawInsight, error) {
	for idx := range f.insights {
		if f.insights[idx].ID != id {
			continue
		}
		old := f.insights[idx]
		if p.Status != nil {
			f.insights[idx].Status = *p.Status
			if *p.Status == "Resolved" && old.Status != "Resolved" {
				f.logActivity("insight_resolved", actorOr(p.CurrentUser), "", "", "", old.Title)
			}
		}
		return f.insights[idx], nil
	}
	return record.RawInsight{}, errors.New("insight not found")
}

func (f *fakeGateway) CreateUser(ctx context.Context, p record.RawUserPatch) (record.RawUser, error) {
	u := record.RawUser{ID: f.id("u")}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeGateway) UpdateUser(ctx context.Context, id string, p record.RawUserPatch) (record.RawUser, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			if p.Name != nil {
				f.users[i].Name = *p.Name
			}
			return f.users[i], nil
		}
	}
	return record.RawUser{}, errors.New("user not found")
}

func (f *fakeGateway) CreateRecording(ctx context.Context, p record.RawRecordingPatch) (record.RawRecording, error) {
	r := record.RawRecording{ID: f.id("r")}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.CandidateID != nil {
		r.CandidateID = *p.CandidateID
	}
	f.recordings = append(f.recordings, r)
	return r, nil
}

func (f *fakeGateway) GetDashboardStats(ctx context.Context) (record.RawStats, error) {
	return record.RawStats{TotalCandidates: len(f.candidates)}, nil
}

func actorOr(currentUser string) string {
	if currentUser == "" {
		return "System"
	}
	return currentUser
}

func seededGateway() *fakeGateway {
	return &fakeGateway{
		departments: []record.RawDepartment{
			{ID: "d-1", Name: "Engineering"},
			{ID: "d-2", Name: "Product"},
		},
		teams: []record.RawTeam{
			{ID: "t-1", Name: "FE"},
			{ID: "t-2", Name: "PM"},
		},
	}
}

func TestInitializeLoadsSnapshot(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Sara Kim", ResearchStatus: "Scheduled"}}
	gw.users = []record.RawUser{{ID: "u-1", Name: "Maya", Email: "maya@example.com"}}

	store := New(gw, "Maya")
	assert.True(t, store.Loading())

	require.NoError(t, store.Initialize(context.Background()))

	assert.False(t, store.Loading())
	assert.NoError(t, store.Err())
	require.Len(t, store.Candidates(), 1)
	assert.Equal(t, "Sara Kim", store.Candidates()[0].Name)
	require.Len(t, store.Users(), 1)
	assert.Len(t, store.Departments(), 2)
	assert.Len(t, store.Teams(), 2)
}

func TestInitializeFailureSetsError(t *testing.T) {
	gw := seededGateway()
	gw.failCandidates = true

	store := New(gw, "Maya")
	err := store.Initialize(context.Background())

	require.Error(t, err)
	assert.False(t, store.Loading())
	assert.Error(t, store.Err())
	assert.Empty(t, store.Candidates())
}

func TestRetryAfterFailure(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Sara Kim"}}
	gw.failCandidates = true

	store := New(gw, "Maya")
	require.Error(t, store.Initialize(context.Background()))

	gw.failCandidates = false
	require.NoError(t, store.Retry(context.Background()))

	assert.NoError(t, store.Err())
	assert.Len(t, store.Candidates(), 1)
}

func TestReadersReturnCopies(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Sara Kim"}}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	got := store.Candidates()
	got[0].Name = "mutated"

	assert.Equal(t, "Sara Kim", store.Candidates()[0].Name)
}

func TestAddCandidateHeadInsertAndActivity(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-0", Name: "Sara Kim"}}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	created, err := store.AddCandidate(context.Background(), domain.CandidatePatch{
		Name:       domain.Ptr("Rahul Mehta"),
		Department: domain.Ptr("Engineering"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", created.Department)

	candidates := store.Candidates()
	require.Len(t, candidates, 2)
	assert.Equal(t, "Rahul Mehta", candidates[0].Name)

	activity := store.Activity()
	require.Len(t, activity, 1)
	assert.Equal(t, domain.ActivityCandidateAdded, activity[0].Type)
	assert.Equal(t, "Maya", activity[0].User)
}

func TestAddSessionLinksCandidate(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Rahul Mehta"}}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	session, err := store.AddSession(context.Background(), domain.SessionPatch{
		CandidateID: domain.Ptr("c-1"),
		Product:     domain.Ptr("GWE"),
	})
	require.NoError(t, err)

	candidate, ok := store.Candidate("c-1")
	require.True(t, ok)
	assert.Contains(t, candidate.Sessions, session.ID)

	activity := store.Activity()
	require.NotEmpty(t, activity)
	assert.Equal(t, domain.ActivitySessionScheduled, activity[0].Type)
	assert.Equal(t, "Rahul Mehta", activity[0].CandidateName)
}

func TestDeleteCandidateRemovesEntry(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{
		{ID: "c-1", Name: "Rahul Mehta"},
		{ID: "c-2", Name: "Sara Kim"},
	}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	require.NoError(t, store.DeleteCandidate(context.Background(), "c-1"))

	candidates := store.Candidates()
	require.Len(t, candidates, 1)
	assert.Equal(t, "c-2", candidates[0].ID)
}

func TestUpdateWithoutStatusSkipsActivityRefresh(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Rahul Mehta"}}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	// A failing activity feed only matters when a refresh is attempted.
	gw.failActivity = true

	_, err := store.UpdateCandidate(context.Background(), "c-1", domain.CandidatePatch{
		Notes: domain.Ptr("prefers mornings"),
	})
	require.NoError(t, err)

	candidate, ok := store.Candidate("c-1")
	require.True(t, ok)
	assert.Equal(t, "prefers mornings", candidate.Notes)
}

func TestActivityRefreshFailureKeepsMutation(t *testing.T) {
	gw := seededGateway()

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	gw.failActivity = true

	created, err := store.AddCandidate(context.Background(), domain.CandidatePatch{
		Name: domain.Ptr("Rahul Mehta"),
	})
	require.NoError(t, err)

	_, ok := store.Candidate(created.ID)
	assert.True(t, ok)
	assert.Empty(t, store.Activity())
}

func TestUpdateCandidateSameStatusSkipsActivityRefresh(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Rahul Mehta", ResearchStatus: "Scheduled"}}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))
	baseline := gw.activityFetches

	_, err := store.UpdateCandidate(context.Background(), "c-1", domain.CandidatePatch{
		ResearchStatus: domain.Ptr(domain.ResearchScheduled),
	})
	require.NoError(t, err)
	assert.Equal(t, baseline, gw.activityFetches)

	_, err = store.UpdateCandidate(context.Background(), "c-1", domain.CandidatePatch{
		ResearchStatus: domain.Ptr(domain.ResearchCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, baseline+1, gw.activityFetches)
}

func TestUpdateInsightNonResolvedSkipsActivityRefresh(t *testing.T) {
	gw := seededGateway()

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	insight, err := store.AddInsight(context.Background(), domain.InsightPatch{
		Title: domain.Ptr("Export button hidden on small screens"),
	})
	require.NoError(t, err)
	baseline := gw.activityFetches

	_, err = store.UpdateInsight(context.Background(), insight.ID, domain.InsightPatch{
		Status: domain.Ptr(domain.InsightSkipped),
	})
	require.NoError(t, err)
	assert.Equal(t, baseline, gw.activityFetches)

	_, err = store.UpdateInsight(context.Background(), insight.ID, domain.InsightPatch{
		Status: domain.Ptr(domain.InsightResolved),
	})
	require.NoError(t, err)
	assert.Equal(t, baseline+1, gw.activityFetches)

	// Already Resolved: no further transition, no further refresh.
	_, err = store.UpdateInsight(context.Background(), insight.ID, domain.InsightPatch{
		Status: domain.Ptr(domain.InsightResolved),
	})
	require.NoError(t, err)
	assert.Equal(t, baseline+1, gw.activityFetches)
}

func TestRejectedMutationLeavesStateUnchanged(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Sara Kim"}}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))
	before := store.Candidates()

	gw.failCreate = true

	_, err := store.AddCandidate(context.Background(), domain.CandidatePatch{
		Name: domain.Ptr("Rahul Mehta"),
	})
	require.Error(t, err)

	assert.Equal(t, before, store.Candidates())
	assert.Empty(t, store.Activity())
}

func TestInsightResolvedActivity(t *testing.T) {
	gw := seededGateway()

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	insight, err := store.AddInsight(context.Background(), domain.InsightPatch{
		Title: domain.Ptr("Export button hidden on small screens"),
		Team:  domain.Ptr("FE"),
	})
	require.NoError(t, err)

	_, err = store.UpdateInsight(context.Background(), insight.ID, domain.InsightPatch{
		Status: domain.Ptr(domain.InsightResolved),
	})
	require.NoError(t, err)

	activity := store.Activity()
	require.Len(t, activity, 2)
	assert.Equal(t, domain.ActivityInsightResolved, activity[0].Type)
	assert.Equal(t, domain.ActivityInsightCreated, activity[1].Type)
}

func TestRefreshRecordingsLinksCandidates(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Rahul Mehta"}}
	gw.recordings = []record.RawRecording{
		{ID: "r-1", Title: "Kickoff interview", CandidateID: "c-1"},
	}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	assert.Empty(t, store.Recordings())

	require.NoError(t, store.RefreshRecordings(context.Background()))

	require.Len(t, store.Recordings(), 1)
	candidate, ok := store.Candidate("c-1")
	require.True(t, ok)
	require.Len(t, candidate.Recordings, 1)
	assert.Equal(t, "Kickoff interview", candidate.Recordings[0].Title)
}

func TestProductsStaticList(t *testing.T) {
	store := New(seededGateway(), "Maya")

	products := store.Products()
	require.Len(t, products, 4)
	assert.Equal(t, "GWE", products[0].Name)
}

func TestStats(t *testing.T) {
	gw := seededGateway()
	gw.candidates = []record.RawCandidate{{ID: "c-1", Name: "Rahul Mehta"}}

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCandidates)
}

// Full lifecycle: create a candidate, move it through scheduling, and check
// the derived activity trail stays in order.
func TestCandidateLifecycleActivityTrail(t *testing.T) {
	gw := seededGateway()

	store := New(gw, "Maya")
	require.NoError(t, store.Initialize(context.Background()))

	created, err := store.AddCandidate(context.Background(), domain.CandidatePatch{
		Name:           domain.Ptr("Rahul Mehta"),
		Department:     domain.Ptr("Engineering"),
		ResearchStatus: domain.Ptr(domain.ResearchToBeScheduled),
	})
	require.NoError(t, err)

	_, err = store.UpdateCandidate(context.Background(), created.ID, domain.CandidatePatch{
		ResearchStatus: domain.Ptr(domain.ResearchScheduled),
	})
	require.NoError(t, err)

	_, err = store.UpdateCandidate(context.Background(), created.ID, domain.CandidatePatch{
		ResearchStatus: domain.Ptr(domain.ResearchCompleted),
	})
	require.NoError(t, err)

	candidate, ok := store.Candidate(created.ID)
	require.True(t, ok)
	assert.Equal(t, domain.ResearchCompleted, candidate.ResearchStatus)

	activity := store.Activity()
	require.Len(t, activity, 3)

	assert.Equal(t, domain.ActivityStatusChanged, activity[0].Type)
	assert.Equal(t, "Scheduled", activity[0].OldStatus)
	assert.Equal(t, "Completed", activity[0].NewStatus)

	assert.Equal(t, domain.ActivityStatusChanged, activity[1].Type)
	assert.Equal(t, "To be scheduled", activity[1].OldStatus)
	assert.Equal(t, "Scheduled", activity[1].NewStatus)

	assert.Equal(t, domain.ActivityCandidateAdded, activity[2].Type)
	assert.Equal(t, "Rahul Mehta", activity[2].CandidateName)
}
