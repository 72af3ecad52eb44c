package response

import (
	"time"

	"renomarket/internal/domain/entities"
)

type PaymentResponse struct {
	ID                 string    `json:"id"`
	ProposalID         string    `json:"proposal_id"`
	Type               string    `json:"type"`
	Status             string    `json:"status"`
	AmountCents        int64     `json:"amount_cents"`
	PlatformFeeCents   int64     `json:"platform_fee_cents"`
	NetAmountCents     int64     `json:"net_amount_cents"`
	Currency           string    `json:"currency"`
	MilestoneSeq       int       `json:"milestone_seq,omitempty"`
	ProviderPaymentID  string    `json:"provider_payment_id,omitempty"`
	ConfirmationHandle string    `json:"confirmation_handle,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID,
		ProposalID:         p.ProposalID,
		Type:               string(p.Type),
		Status:             string(p.Status),
		AmountCents:        p.AmountCents,
		PlatformFeeCents:   p.PlatformFeeCents,
		NetAmountCents:     p.NetAmountCents,
		Currency:           p.Currency,
		MilestoneSeq:       p.MilestoneSeq,
		ProviderPaymentID:  p.ProviderPaymentID,
		ConfirmationHandle: p.ConfirmationHandle,
		CreatedAt:          p.CreatedAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}

type OnboardResponse struct {
	ContractorID     string `json:"contractor_id"`
	PaymentAccountID string `json:"payment_account_id"`
}
