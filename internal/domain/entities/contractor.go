package entities

import "time"

// RateSubmission is a contractor-submitted hourly rate range for a category.
// When submissions exist for a category their arithmetic means override the
// static base rates in the pricing tables.
type RateSubmission struct {
	ContractorID string    `json:"contractor_id"`
	Category     string    `json:"category"`
	MinRate      float64   `json:"min_rate"`
	MaxRate      float64   `json:"max_rate"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Contractor is the slice of the contractor profile this service reads:
// the payment-processor account used as the destination for escrow
// transfers. A contractor without one cannot be paid (PayeeNotOnboarded).
//
// Storage model (DynamoDB):
//   - PK: id
type Contractor struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	PaymentAccountID string    `json:"payment_account_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
