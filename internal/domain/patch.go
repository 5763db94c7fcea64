package domain

// Patch types carry partial updates. A nil field means "leave unchanged";
// server-generated fields (id, timestamps) are never part of a patch.
// Department and Team hold display names; the caller resolves them to
// foreign-key ids before persisting.

type CandidatePatch struct {
	Name           *string
	Department     *string
	Title          *string
	Location       *string
	DateOfJoining  *string
	ResearchStatus *ResearchStatus
	FeaturesTested *[]string
	UserType       *UserType
	Notes          *string
}

type SessionPatch struct {
	CandidateID    *string
	Product        *string
	FeaturesTested *[]string
	Moderator      *string
	Date           *string
	Time           *string
	Duration       *string
	Status         *SessionStatus
	RecordingLink  *string
	SessionNotes   *string
	Objectives     *string
	Observations   *string
	Quotes         *string
}

type InsightPatch struct {
	Title           *string
	Description     *string
	UserInterviewed *string
	Product         *string
	Status          *InsightStatus
	TriageStatus    *TriageStatus
	Priority        *Priority
	Category        *Category
	Team            *string
	Effort          *Effort
	Attachments     *[]string
	Tags            *[]string
	Assignee        *string
}

type UserPatch struct {
	Name   *string
	Email  *string
	Role   *Role
	Team   *string
	Status *UserStatus
}

type RecordingPatch struct {
	Title       *string
	URL         *string
	Date        *string
	CandidateID *string
	SessionID   *string
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T { return &v }
