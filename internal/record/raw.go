// Package record defines the wire/storage shape of every entity (snake_case
// fields, nested foreign-key objects) and the transformers between that shape
// and the flattened client-side domain shape.
package record

// Ref is a joined foreign-key object embedded in a parent record.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IDRef is a joined relationship carrying only the related row's id.
type IDRef struct {
	ID string `json:"id"`
}

// SessionRef is the session object joined into recording reads.
type SessionRef struct {
	ID      string `json:"id"`
	Product string `json:"product"`
}

type RawCandidate struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Department     *Ref     `json:"department,omitempty"`
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	DateOfJoining  string   `json:"date_of_joining"`
	ResearchStatus string   `json:"research_status"`
	FeaturesTested []string `json:"features_tested"`
	UserType       string   `json:"user_type"`
	Notes          string   `json:"notes"`
	Sessions       []IDRef  `json:"sessions"`
	CreatedAt      string   `json:"created_at,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

type RawSession struct {
	ID             string   `json:"id"`
	CandidateID    string   `json:"candidate_id"`
	Candidate      *Ref     `json:"candidate,omitempty"`
	Product        string   `json:"product"`
	FeaturesTested []string `json:"features_tested"`
	Moderator      string   `json:"moderator"`
	SessionDate    string   `json:"session_date"`
	SessionTime    string   `json:"session_time"`
	Duration       string   `json:"duration"`
	Status         string   `json:"status"`
	RecordingLink  string   `json:"recording_link,omitempty"`
	SessionNotes   string   `json:"session_notes"`
	Objectives     string   `json:"objectives,omitempty"`
	Observations   string   `json:"observations,omitempty"`
	Quotes         string   `json:"quotes,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

type RawInsight struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	UserInterviewed string   `json:"user_interviewed"`
	Candidate       *Ref     `json:"candidate,omitempty"`
	Product         string   `json:"product"`
	Status          string   `json:"status"`
	TriageStatus    string   `json:"triage_status"`
	Priority        string   `json:"priority"`
	Category        string   `json:"category"`
	Team            *Ref     `json:"team,omitempty"`
	Effort          string   `json:"effort"`
	Attachments     []string `json:"attachments"`
	Tags            []string `json:"tags"`
	Assignee        string   `json:"assignee,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
}

type RawUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Team      *Ref   `json:"team,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type RawActivity struct {
	ID            string `json:"id"`
	ActivityType  string `json:"activity_type"`
	UserName      string `json:"user_name"`
	CandidateName string `json:"candidate_name,omitempty"`
	OldStatus     string `json:"old_status,omitempty"`
	NewStatus     string `json:"new_status,omitempty"`
	InsightTitle  string `json:"insight_title,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type RawRecording struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	URL           string      `json:"url"`
	RecordingDate string      `json:"recording_date"`
	CandidateID   string      `json:"candidate_id"`
	SessionID     string      `json:"session_id"`
	Candidate     *Ref        `json:"candidate,omitempty"`
	Session       *SessionRef `json:"session,omitempty"`
	CreatedAt     string      `json:"created_at,omitempty"`
}

type RawDepartment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RawTeam struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawStats mirrors the /dashboard/stats response. Unlike the entity records
// it is emitted in camelCase, matching the original aggregate payload.
type RawStats struct {
	TotalCandidates    int            `json:"totalCandidates"`
	TotalSessions      int            `json:"totalSessions"`
	TotalInsights      int            `json:"totalInsights"`
	CandidatesByStatus map[string]int `json:"candidatesByStatus"`
	SessionsByStatus   map[string]int `json:"sessionsByStatus"`
	InsightsByPriority map[string]int `json:"insightsByPriority"`
	RecentActivity     []RawActivity  `json:"recentActivity"`
}
