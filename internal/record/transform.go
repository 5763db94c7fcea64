package record

import (
	"errors"
	"time"

	"github.com/researchhub/researchhub-service/internal/domain"
)

// Storage-to-domain transformers. A nil input fails fast; any absent field is
// replaced by its default, so a non-nil input never produces an error.

var (
	ErrNilCandidate = errors.New("cannot transform nil candidate record")
	ErrNilSession   = errors.New("cannot transform nil session record")
	ErrNilInsight   = errors.New("cannot transform nil insight record")
	ErrNilUser      = errors.New("cannot transform nil user record")
	ErrNilActivity  = errors.New("cannot transform nil activity record")
	ErrNilRecording = errors.New("cannot transform nil recording record")
)

func ToCandidate(raw *RawCandidate) (domain.Candidate, error) {
	if raw == nil {
		return domain.Candidate{}, ErrNilCandidate
	}

	department := "Unknown"
	if raw.Department != nil && raw.Department.Name != "" {
		department = raw.Department.Name
	}

	sessions := make([]string, 0, len(raw.Sessions))
	for _, ref := range raw.Sessions {
		sessions = append(sessions, ref.ID)
	}

	return domain.Candidate{
		ID:             raw.ID,
		Name:           strOr(raw.Name, "Unknown"),
		Department:     department,
		Title:          raw.Title,
		Location:       raw.Location,
		DateOfJoining:  raw.DateOfJoining,
		ResearchStatus: domain.ResearchStatus(strOr(raw.ResearchStatus, domain.ResearchToBeScheduled.String())),
		FeaturesTested: sliceOrEmpty(raw.FeaturesTested),
		UserType:       domain.UserType(strOr(raw.UserType, domain.UserTypeBuilder.String())),
		Recordings:     []domain.Recording{},
		Notes:          raw.Notes,
		Sessions:       sessions,
	}, nil
}

func ToSession(raw *RawSession) (domain.Session, error) {
	if raw == nil {
		return domain.Session{}, ErrNilSession
	}

	return domain.Session{
		ID:             raw.ID,
		CandidateID:    raw.CandidateID,
		Product:        raw.Product,
		FeaturesTested: sliceOrEmpty(raw.FeaturesTested),
		Moderator:      raw.Moderator,
		Date:           raw.SessionDate,
		Time:           raw.SessionTime,
		Duration:       raw.Duration,
		Status:         domain.SessionStatus(strOr(raw.Status, domain.SessionScheduled.String())),
		RecordingLink:  raw.RecordingLink,
		SessionNotes:   raw.SessionNotes,
		Objectives:     raw.Objectives,
		Observations:   raw.Observations,
		Quotes:         raw.Quotes,
		IssuesFound:    []string{},
	}, nil
}

func ToInsight(raw *RawInsight) (domain.Insight, error) {
	if raw == nil {
		return domain.Insight{}, ErrNilInsight
	}

	team := "FE"
	if raw.Team != nil && raw.Team.Name != "" {
		team = raw.Team.Name
	}

	return domain.Insight{
		ID:              raw.ID,
		Title:           strOr(raw.Title, "Untitled"),
		Description:     raw.Description,
		UserInterviewed: raw.UserInterviewed,
		Product:         raw.Product,
		Status:          domain.InsightStatus(strOr(raw.Status, domain.InsightPickedUp.String())),
		TriageStatus:    domain.TriageStatus(strOr(raw.TriageStatus, domain.TriageTodo.String())),
		Priority:        domain.Priority(strOr(raw.Priority, domain.PriorityP2.String())),
		Category:        domain.Category(strOr(raw.Category, domain.CategoryOther.String())),
		Team:            team,
		Effort:          domain.Effort(strOr(raw.Effort, domain.EffortMD.String())),
		Attachments:     sliceOrEmpty(raw.Attachments),
		Tags:            sliceOrEmpty(raw.Tags),
		Assignee:        raw.Assignee,
		CreatedAt:       strOr(raw.CreatedAt, nowISO()),
		UpdatedAt:       strOr(raw.UpdatedAt, nowISO()),
	}, nil
}

func ToUser(raw *RawUser) (domain.User, error) {
	if raw == nil {
		return domain.User{}, ErrNilUser
	}

	team := "FE"
	if raw.Team != nil && raw.Team.Name != "" {
		team = raw.Team.Name
	}

	return domain.User{
		ID:     raw.ID,
		Name:   strOr(raw.Name, "Unknown User"),
		Email:  raw.Email,
		Role:   domain.Role(strOr(raw.Role, domain.RoleViewer.String())),
		Team:   team,
		Status: domain.UserStatus(strOr(raw.Status, domain.UserActive.String())),
	}, nil
}

func ToActivity(raw *RawActivity) (domain.ActivityItem, error) {
	if raw == nil {
		return domain.ActivityItem{}, ErrNilActivity
	}

	return domain.ActivityItem{
		ID:            raw.ID,
		Type:          domain.ActivityType(raw.ActivityType),
		User:          strOr(raw.UserName, "Unknown"),
		CandidateName: raw.CandidateName,
		OldStatus:     raw.OldStatus,
		NewStatus:     raw.NewStatus,
		InsightTitle:  raw.InsightTitle,
		Timestamp:     strOr(raw.CreatedAt, nowISO()),
	}, nil
}

func ToRecording(raw *RawRecording) (domain.Recording, error) {
	if raw == nil {
		return domain.Recording{}, ErrNilRecording
	}

	return domain.Recording{
		ID:          raw.ID,
		Title:       raw.Title,
		URL:         raw.URL,
		Date:        raw.RecordingDate,
		CandidateID: raw.CandidateID,
		SessionID:   raw.SessionID,
	}, nil
}

func strOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
