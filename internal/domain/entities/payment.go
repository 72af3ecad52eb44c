package entities

import "time"

// PaymentStatus tracks a single money movement against the processor.
//
// The engine only ever writes held and released rows: a failed capture
// writes no row at all. Pending and failed mirror processor states for
// consumers reading the ledger alongside provider webhooks.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusHeld     PaymentStatus = "held"
	PaymentStatusReleased PaymentStatus = "released"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// PaymentType distinguishes the deposit captured at acceptance from the
// per-milestone releases that follow.
type PaymentType string

const (
	PaymentTypeDeposit   PaymentType = "deposit"
	PaymentTypeMilestone PaymentType = "milestone"
)

// Payment is one ledger row per money movement. Rows reference a proposal
// and job by id but are owned by the ledger, not the proposal.
//
// Storage model (DynamoDB):
//   - PK: id (deterministic per proposal/milestone so retried captures
//     collapse onto the existing row)
//   - GSI1 (proposal_id-index): proposal_id
//
// Monetary representation: integer minor currency units (cents).
//
// Invariant: AmountCents = PlatformFeeCents + NetAmountCents, exactly.
type Payment struct {
	ID                 string        `json:"id"`
	ProposalID         string        `json:"proposal_id"`
	JobID              string        `json:"job_id"`
	Type               PaymentType   `json:"type"`
	Status             PaymentStatus `json:"status"`
	AmountCents        int64         `json:"amount_cents"`
	PlatformFeeCents   int64         `json:"platform_fee_cents"`
	NetAmountCents     int64         `json:"net_amount_cents"`
	Currency           string        `json:"currency"`
	MilestoneSeq       int           `json:"milestone_seq,omitempty"`
	ProviderPaymentID  string        `json:"provider_payment_id,omitempty"`
	ConfirmationHandle string        `json:"confirmation_handle,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

// MilestonePayout is one computed entry of a proposal's payment schedule.
// The final entry absorbs any half-up rounding remainder so the schedule
// reconciles to the proposal's estimated cost within one cent.
type MilestonePayout struct {
	Seq      int     `json:"seq"`
	Label    string  `json:"label"`
	Percent  float64 `json:"percent"`
	Amount   float64 `json:"amount"`
	Released bool    `json:"released"`
}
