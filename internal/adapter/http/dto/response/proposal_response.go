package response

import (
	"time"

	"renomarket/internal/domain/entities"
)

type ProposalResponse struct {
	ID                string                      `json:"id"`
	JobID             string                      `json:"job_id"`
	ContractorID      string                      `json:"contractor_id"`
	Status            string                      `json:"status"`
	EstimatedCost     float64                     `json:"estimated_cost"`
	DurationDays      int                         `json:"duration_days"`
	Steps             []entities.SequenceStep     `json:"steps"`
	PaymentMilestones []entities.PaymentMilestone `json:"payment_milestones"`
	HoldbackPercent   float64                     `json:"holdback_percent"`
	WarrantyTerms     string                      `json:"warranty_terms,omitempty"`
	HasLicensedDesign bool                        `json:"has_licensed_design"`
	ExpiresAt         *time.Time                  `json:"expires_at,omitempty"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

func FromProposal(p entities.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:                p.ID,
		JobID:             p.JobID,
		ContractorID:      p.ContractorID,
		Status:            string(p.Status),
		EstimatedCost:     p.EstimatedCost,
		DurationDays:      p.DurationDays,
		Steps:             p.Steps,
		PaymentMilestones: p.PaymentMilestones,
		HoldbackPercent:   p.HoldbackPercent,
		WarrantyTerms:     p.WarrantyTerms,
		HasLicensedDesign: p.HasLicensedDesign,
		ExpiresAt:         p.ExpiresAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// AcceptResponse pairs the accepted proposal with its captured deposit.
type AcceptResponse struct {
	Proposal ProposalResponse `json:"proposal"`
	Deposit  PaymentResponse  `json:"deposit"`
}
