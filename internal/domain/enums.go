package domain

// ResearchStatus tracks where a candidate is in the research pipeline.
type ResearchStatus string

const (
	ResearchToBeScheduled ResearchStatus = "To be scheduled"
	ResearchScheduled     ResearchStatus = "Scheduled"
	ResearchCompleted     ResearchStatus = "Completed"
	ResearchSkipped       ResearchStatus = "Skipped"
)

func (s ResearchStatus) String() string { return string(s) }

func (s ResearchStatus) IsValid() bool {
	switch s {
	case ResearchToBeScheduled, ResearchScheduled, ResearchCompleted, ResearchSkipped:
		return true
	}
	return false
}

// UserType distinguishes how a candidate uses the product.
type UserType string

const (
	UserTypeBuilder UserType = "Builder"
	UserTypeEndUser UserType = "End User"
)

func (t UserType) String() string { return string(t) }

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeBuilder, UserTypeEndUser:
		return true
	}
	return false
}

// SessionStatus is the lifecycle state of an interview session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "Scheduled"
	SessionCompleted SessionStatus = "Completed"
	SessionSkipped   SessionStatus = "Skipped"
)

func (s SessionStatus) String() string { return string(s) }

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionSkipped:
		return true
	}
	return false
}

// InsightStatus is the delivery state of an insight.
type InsightStatus string

const (
	InsightPickedUp         InsightStatus = "Picked up"
	InsightUnderDevelopment InsightStatus = "Under development"
	InsightResolved         InsightStatus = "Resolved"
	InsightSkipped          InsightStatus = "Skipped"
)

func (s InsightStatus) String() string { return string(s) }

func (s InsightStatus) IsValid() bool {
	switch s {
	case InsightPickedUp, InsightUnderDevelopment, InsightResolved, InsightSkipped:
		return true
	}
	return false
}

// TriageStatus tracks triage progress on an insight.
type TriageStatus string

const (
	TriageTodo       TriageStatus = "Todo"
	TriageInProgress TriageStatus = "In progress"
	TriageDone       TriageStatus = "Done"
)

func (s TriageStatus) String() string { return string(s) }

func (s TriageStatus) IsValid() bool {
	switch s {
	case TriageTodo, TriageInProgress, TriageDone:
		return true
	}
	return false
}

// Priority ranks an insight.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityP0, PriorityP1, PriorityP2:
		return true
	}
	return false
}

// Category classifies an insight.
type Category string

const (
	CategoryBug                Category = "Bug"
	CategoryFeatureEnhancement Category = "Feature Enhancement"
	CategoryCopyChange         Category = "Copy Change"
	CategoryOther              Category = "Other"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryBug, CategoryFeatureEnhancement, CategoryCopyChange, CategoryOther:
		return true
	}
	return false
}

// Effort is a t-shirt size estimate for fixing an insight.
type Effort string

const (
	EffortXS Effort = "xs"
	EffortSM Effort = "sm"
	EffortMD Effort = "md"
	EffortLG Effort = "lg"
)

func (e Effort) String() string { return string(e) }

func (e Effort) IsValid() bool {
	switch e {
	case EffortXS, EffortSM, EffortMD, EffortLG:
		return true
	}
	return false
}

// Role controls what a user may do in the UI.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleResearcher Role = "Researcher"
	RoleViewer     Role = "Viewer"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleResearcher, RoleViewer:
		return true
	}
	return false
}

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserInvited  UserStatus = "Invited"
	UserActive   UserStatus = "Active"
	UserDisabled UserStatus = "Disabled"
)

func (s UserStatus) String() string { return string(s) }

func (s UserStatus) IsValid() bool {
	switch s {
	case UserInvited, UserActive, UserDisabled:
		return true
	}
	return false
}

// ActivityType names the tracked state transitions in the activity log.
type ActivityType string

const (
	ActivityCandidateAdded   ActivityType = "candidate_added"
	ActivityStatusChanged    ActivityType = "status_changed"
	ActivitySessionScheduled ActivityType = "session_scheduled"
	ActivityInsightCreated   ActivityType = "insight_created"
	ActivityInsightResolved  ActivityType = "insight_resolved"
)

func (t ActivityType) String() string { return string(t) }

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityCandidateAdded, ActivityStatusChanged, ActivitySessionScheduled,
		ActivityInsightCreated, ActivityInsightResolved:
		return true
	}
	return false
}
