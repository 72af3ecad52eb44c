package request

import (
	"strings"
	"time"

	"renomarket/internal/domain/entities"
)

type SequenceStepRequest struct {
	StepNumber         int    `json:"step_number" binding:"required"`
	Title              string `json:"title"`
	RequiresInspection bool   `json:"requires_inspection"`
	IsMilestone        bool   `json:"is_milestone"`
	CodeReference      string `json:"code_reference"`
	DurationDays       int    `json:"duration_days"`
}

type PaymentMilestoneRequest struct {
	Label   string  `json:"label" binding:"required"`
	Percent float64 `json:"percent" binding:"required"`
}

// ProposalRequest creates a draft proposal. Steps and milestones authored
// here become immutable once the proposal is sent.
type ProposalRequest struct {
	JobID             string                    `json:"job_id" binding:"required"`
	ContractorID      string                    `json:"contractor_id" binding:"required"`
	EstimatedCost     float64                   `json:"estimated_cost"`
	DurationDays      int                       `json:"duration_days"`
	Steps             []SequenceStepRequest     `json:"steps"`
	PaymentMilestones []PaymentMilestoneRequest `json:"payment_milestones"`
	HoldbackPercent   float64                   `json:"holdback_percent"`
	WarrantyTerms     string                    `json:"warranty_terms"`
	HasLicensedDesign bool                      `json:"has_licensed_design"`
	ExpiresAt         *time.Time                `json:"expires_at"`
}

func (r ProposalRequest) ToEntity() entities.Proposal {
	return entities.Proposal{
		JobID:             strings.TrimSpace(r.JobID),
		ContractorID:      strings.TrimSpace(r.ContractorID),
		EstimatedCost:     r.EstimatedCost,
		DurationDays:      r.DurationDays,
		Steps:             toSteps(r.Steps),
		PaymentMilestones: toMilestones(r.PaymentMilestones),
		HoldbackPercent:   r.HoldbackPercent,
		WarrantyTerms:     r.WarrantyTerms,
		HasLicensedDesign: r.HasLicensedDesign,
		ExpiresAt:         r.ExpiresAt,
	}
}

// ScoreRequest scores an arbitrary proposal structure without persisting it,
// so contractors can iterate on scope before saving a draft.
type ScoreRequest struct {
	Steps             []SequenceStepRequest     `json:"steps"`
	PaymentMilestones []PaymentMilestoneRequest `json:"payment_milestones"`
	HoldbackPercent   float64                   `json:"holdback_percent"`
	WarrantyTerms     string                    `json:"warranty_terms"`
	HasLicensedDesign bool                      `json:"has_licensed_design"`
}

func (r ScoreRequest) ToSteps() []entities.SequenceStep {
	return toSteps(r.Steps)
}

func (r ScoreRequest) ToMilestones() []entities.PaymentMilestone {
	return toMilestones(r.PaymentMilestones)
}

// OnboardRequest registers a contractor with the payment processor.
type OnboardRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

func toSteps(steps []SequenceStepRequest) []entities.SequenceStep {
	out := make([]entities.SequenceStep, 0, len(steps))
	for _, s := range steps {
		out = append(out, entities.SequenceStep{
			StepNumber:         s.StepNumber,
			Title:              s.Title,
			RequiresInspection: s.RequiresInspection,
			IsMilestone:        s.IsMilestone,
			CodeReference:      s.CodeReference,
			DurationDays:       s.DurationDays,
		})
	}
	return out
}

func toMilestones(milestones []PaymentMilestoneRequest) []entities.PaymentMilestone {
	out := make([]entities.PaymentMilestone, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, entities.PaymentMilestone{Label: m.Label, Percent: m.Percent})
	}
	return out
}
