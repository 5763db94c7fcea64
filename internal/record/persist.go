package record

import (
	"github.com/researchhub/researchhub-service/internal/domain"
)

// Domain-to-storage patch shapes. Only storage-backed columns appear here;
// derived fields (candidate session list, insight issue list) are dropped and
// re-synthesized by relationship queries on read. CurrentUser is the acting
// user's display name, consumed by the server's activity logging and never
// stored on the entity row itself.

type RawCandidatePatch struct {
	Name           *string   `json:"name,omitempty"`
	DepartmentID   *string   `json:"department_id,omitempty"`
	Title          *string   `json:"title,omitempty"`
	Location       *string   `json:"location,omitempty"`
	DateOfJoining  *string   `json:"date_of_joining,omitempty"`
	ResearchStatus *string   `json:"research_status,omitempty"`
	FeaturesTested *[]string `json:"features_tested,omitempty"`
	UserType       *string   `json:"user_type,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CurrentUser    string    `json:"current_user,omitempty"`
}

type RawSessionPatch struct {
	CandidateID    *string   `json:"candidate_id,omitempty"`
	Product        *string   `json:"product,omitempty"`
	FeaturesTested *[]string `json:"features_tested,omitempty"`
	Moderator      *string   `json:"moderator,omitempty"`
	SessionDate    *string   `json:"session_date,omitempty"`
	SessionTime    *string   `json:"session_time,omitempty"`
	Duration       *string   `json:"duration,omitempty"`
	Status         *string   `json:"status,omitempty"`
	RecordingLink  *string   `json:"recording_link,omitempty"`
	SessionNotes   *string   `json:"session_notes,omitempty"`
	Objectives     *string   `json:"objectives,omitempty"`
	Observations   *string   `json:"observations,omitempty"`
	Quotes         *string   `json:"quotes,omitempty"`
	CurrentUser    string    `json:"current_user,omitempty"`
}

type RawInsightPatch struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	UserInterviewed *string   `json:"user_interviewed,omitempty"`
	Product         *string   `json:"product,omitempty"`
	Status          *string   `json:"status,omitempty"`
	TriageStatus    *string   `json:"triage_status,omitempty"`
	Priority        *string   `json:"priority,omitempty"`
	Category        *string   `json:"category,omitempty"`
	TeamID          *string   `json:"team_id,omitempty"`
	Effort          *string   `json:"effort,omitempty"`
	Attachments     *[]string `json:"attachments,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	Assignee        *string   `json:"assignee,omitempty"`
	CurrentUser     string    `json:"current_user,omitempty"`
}

type RawUserPatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Role   *string `json:"role,omitempty"`
	TeamID *string `json:"team_id,omitempty"`
	Status *string `json:"status,omitempty"`
}

type RawRecordingPatch struct {
	Title         *string `json:"title,omitempty"`
	URL           *string `json:"url,omitempty"`
	RecordingDate *string `json:"recording_date,omitempty"`
	CandidateID   *string `json:"candidate_id,omitempty"`
	SessionID     *string `json:"session_id,omitempty"`
}

// ToRawCandidatePatch translates a domain patch to storage naming. The
// caller resolves the department display name to departmentID beforehand;
// an empty departmentID leaves the column untouched.
func ToRawCandidatePatch(p domain.CandidatePatch, departmentID string) RawCandidatePatch {
	raw := RawCandidatePatch{
		Name:           p.Name,
		Title:          p.Title,
		Location:       p.Location,
		DateOfJoining:  p.DateOfJoining,
		ResearchStatus: enumPtr(p.ResearchStatus),
		FeaturesTested: p.FeaturesTested,
		UserType:       enumPtr(p.UserType),
		Notes:          p.Notes,
	}
	if departmentID != "" {
		raw.DepartmentID = &departmentID
	}
	return raw
}

func ToRawSessionPatch(p domain.SessionPatch) RawSessionPatch {
	return RawSessionPatch{
		CandidateID:    p.CandidateID,
		Product:        p.Product,
		FeaturesTested: p.FeaturesTested,
		Moderator:      p.Moderator,
		SessionDate:    p.Date,
		SessionTime:    p.Time,
		Duration:       p.Duration,
		Status:         enumPtr(p.Status),
		RecordingLink:  p.RecordingLink,
		SessionNotes:   p.SessionNotes,
		Objectives:     p.Objectives,
		Observations:   p.Observations,
		Quotes:         p.Quotes,
	}
}

func ToRawInsightPatch(p domain.InsightPatch, teamID string) RawInsightPatch {
	raw := RawInsightPatch{
		Title:           p.Title,
		Description:     p.Description,
		UserInterviewed: p.UserInterviewed,
		Product:         p.Product,
		Status:          enumPtr(p.Status),
		TriageStatus:    enumPtr(p.TriageStatus),
		Priority:        enumPtr(p.Priority),
		Category:        enumPtr(p.Category),
		Effort:          enumPtr(p.Effort),
		Attachments:     p.Attachments,
		Tags:            p.Tags,
		Assignee:        p.Assignee,
	}
	if teamID != "" {
		raw.TeamID = &teamID
	}
	return raw
}

func ToRawUserPatch(p domain.UserPatch, teamID string) RawUserPatch {
	raw := RawUserPatch{
		Name:   p.Name,
		Email:  p.Email,
		Role:   enumPtr(p.Role),
		Status: enumPtr(p.Status),
	}
	if teamID != "" {
		raw.TeamID = &teamID
	}
	return raw
}

func ToRawRecordingPatch(p domain.RecordingPatch) RawRecordingPatch {
	return RawRecordingPatch{
		Title:         p.Title,
		URL:           p.URL,
		RecordingDate: p.Date,
		CandidateID:   p.CandidateID,
		SessionID:     p.SessionID,
	}
}

func enumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
