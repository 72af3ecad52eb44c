package entities

import "time"

// ProposalStatus is the lifecycle state of a contractor proposal.
//
// The valid transitions are enumerated once in transitionTable; everything
// else is rejected at a single point (CanTransition) instead of scattered
// status-string comparisons.
type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "draft"
	ProposalStatusSent      ProposalStatus = "sent"
	ProposalStatusViewed    ProposalStatus = "viewed"
	ProposalStatusAccepted  ProposalStatus = "accepted"
	ProposalStatusRejected  ProposalStatus = "rejected"
	ProposalStatusExpired   ProposalStatus = "expired"
	ProposalStatusCancelled ProposalStatus = "cancelled"
)

var transitionTable = map[ProposalStatus][]ProposalStatus{
	ProposalStatusDraft:  {ProposalStatusSent},
	ProposalStatusSent:   {ProposalStatusViewed, ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusCancelled, ProposalStatusExpired},
	ProposalStatusViewed: {ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusCancelled, ProposalStatusExpired},
	// accepted, rejected, expired, cancelled are terminal.
}

// CanTransition reports whether from -> to is a legal lifecycle transition.
func CanTransition(from, to ProposalStatus) bool {
	for _, next := range transitionTable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s ProposalStatus) IsTerminal() bool {
	return len(transitionTable[s]) == 0
}

// IsValid reports whether the status is one of the known lifecycle states.
func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSent, ProposalStatusViewed,
		ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusExpired, ProposalStatusCancelled:
		return true
	}
	return false
}

// SequenceStep is one work step authored with a proposal. Step numbers are
// unique and ordered within the proposal; steps are immutable once sent.
type SequenceStep struct {
	StepNumber         int    `json:"step_number"`
	Title              string `json:"title"`
	RequiresInspection bool   `json:"requires_inspection"`
	IsMilestone        bool   `json:"is_milestone"`
	CodeReference      string `json:"code_reference,omitempty"`
	DurationDays       int    `json:"duration_days"`
}

// PaymentMilestone is one (label, percent) entry of the proposal's payment
// schedule. Percents must sum to 100 across the proposal.
type PaymentMilestone struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// Proposal is a contractor's offer on a job.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (job_id-index): job_id
//
// A proposal exclusively owns its steps and payment milestones; both are
// immutable once the proposal leaves draft.
type Proposal struct {
	ID                string             `json:"id"`
	JobID             string             `json:"job_id"`
	ContractorID      string             `json:"contractor_id"`
	Status            ProposalStatus     `json:"status"`
	EstimatedCost     float64            `json:"estimated_cost"`
	DurationDays      int                `json:"duration_days"`
	Steps             []SequenceStep     `json:"steps"`
	PaymentMilestones []PaymentMilestone `json:"payment_milestones"`
	HoldbackPercent   float64            `json:"holdback_percent"`
	WarrantyTerms     string             `json:"warranty_terms,omitempty"`
	HasLicensedDesign bool               `json:"has_licensed_design"`
	ExpiresAt         *time.Time         `json:"expires_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// IsExpired reports whether the proposal's acceptance window has closed.
// A nil ExpiresAt never expires.
func (p Proposal) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}
