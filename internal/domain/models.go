package domain

// Candidate is a research participant, flattened for client use: the
// department is a display name and sessions is a list of session ids.
type Candidate struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Department     string         `json:"department"`
	Title          string         `json:"title"`
	Location       string         `json:"location"`
	DateOfJoining  string         `json:"dateOfJoining"`
	ResearchStatus ResearchStatus `json:"researchStatus"`
	FeaturesTested []string       `json:"featuresTested"`
	UserType       UserType       `json:"userType"`
	Recordings     []Recording    `json:"recordings"`
	Notes          string         `json:"notes"`
	Sessions       []string       `json:"sessions"`
}

// Session is one research interview tied to a candidate and product.
type Session struct {
	ID             string        `json:"id"`
	CandidateID    string        `json:"candidateId"`
	Product        string        `json:"product"`
	FeaturesTested []string      `json:"featuresTested"`
	Moderator      string        `json:"moderator"`
	Date           string        `json:"date"`
	Time           string        `json:"time"`
	Duration       string        `json:"duration"`
	Status         SessionStatus `json:"status"`
	RecordingLink  string        `json:"recordingLink,omitempty"`
	SessionNotes   string        `json:"sessionNotes"`
	Objectives     string        `json:"objectives,omitempty"`
	Observations   string        `json:"observations,omitempty"`
	Quotes         string        `json:"quotes,omitempty"`
	IssuesFound    []string      `json:"issuesFound"`
}

// Insight is an issue or finding raised from research.
type Insight struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	UserInterviewed string        `json:"userInterviewed"`
	Product         string        `json:"product"`
	Status          InsightStatus `json:"status"`
	TriageStatus    TriageStatus  `json:"triageStatus"`
	Priority        Priority      `json:"priority"`
	Category        Category      `json:"category"`
	Team            string        `json:"team"`
	Effort          Effort        `json:"effort"`
	Attachments     []string      `json:"attachments"`
	Tags            []string      `json:"tags"`
	Assignee        string        `json:"assignee,omitempty"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
}

// User is a member of the research team itself, not a participant.
type User struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   Role       `json:"role"`
	Team   string     `json:"team"`
	Status UserStatus `json:"status"`
}

// ActivityItem is one append-only audit entry. Only the fields relevant to
// its type are populated.
type ActivityItem struct {
	ID            string       `json:"id"`
	Type          ActivityType `json:"type"`
	User          string       `json:"user"`
	CandidateName string       `json:"candidateName,omitempty"`
	OldStatus     string       `json:"oldStatus,omitempty"`
	NewStatus     string       `json:"newStatus,omitempty"`
	InsightTitle  string       `json:"insightTitle,omitempty"`
	Timestamp     string       `json:"timestamp"`
}

// Recording is a stored session recording.
type Recording struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Date        string `json:"date"`
	CandidateID string `json:"candidateId"`
	SessionID   string `json:"sessionId"`
}

// Product is a static reference entry describing a product under research.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

// Department is a reference list entry.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team is a reference list entry.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DashboardStats aggregates counts and breakdowns for the dashboard view.
// Insight numbers exclude resolved insights.
type DashboardStats struct {
	TotalCandidates    int            `json:"totalCandidates"`
	TotalSessions      int            `json:"totalSessions"`
	TotalInsights      int            `json:"totalInsights"`
	CandidatesByStatus map[string]int `json:"candidatesByStatus"`
	SessionsByStatus   map[string]int `json:"sessionsByStatus"`
	InsightsByPriority map[string]int `json:"insightsByPriority"`
}
