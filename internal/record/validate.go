package record

import (
	"github.com/researchhub/researchhub-service/internal/domain"
)

// Patch validation rejects enum values the schema's CHECK constraints would
// refuse, so a bad value fails before it reaches the database.

func (p RawCandidatePatch) Validate() error {
	if p.ResearchStatus != nil && !domain.ResearchStatus(*p.ResearchStatus).IsValid() {
		return domain.NewValidationError("invalid research_status", nil)
	}
	if p.UserType != nil && !domain.UserType(*p.UserType).IsValid() {
		return domain.NewValidationError("invalid user_type", nil)
	}
	return nil
}

func (p RawSessionPatch) Validate() error {
	if p.Status != nil && !domain.SessionStatus(*p.Status).IsValid() {
		return domain.NewValidationError("invalid status", nil)
	}
	return nil
}

func (p RawInsightPatch) Validate() error {
	if p.Status != nil && !domain.InsightStatus(*p.Status).IsValid() {
		return domain.NewValidationError("invalid status", nil)
	}
	if p.TriageStatus != nil && !domain.TriageStatus(*p.TriageStatus).IsValid() {
		return domain.NewValidationError("invalid triage_status", nil)
	}
	if p.Priority != nil && !domain.Priority(*p.Priority).IsValid() {
		return domain.NewValidationError("invalid priority", nil)
	}
	if p.Category != nil && !domain.Category(*p.Category).IsValid() {
		return domain.NewValidationError("invalid category", nil)
	}
	if p.Effort != nil && !domain.Effort(*p.Effort).IsValid() {
		return domain.NewValidationError("invalid effort", nil)
	}
	return nil
}

func (p RawUserPatch) Validate() error {
	if p.Role != nil && !domain.Role(*p.Role).IsValid() {
		return domain.NewValidationError("invalid role", nil)
	}
	if p.Status != nil && !domain.UserStatus(*p.Status).IsValid() {
		return domain.NewValidationError("invalid status", nil)
	}
	return nil
}
