package interfaces

import (
	"context"
	"renomarket/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for the Payment ledger.
//
// CreateOnce writes the row only when no row with the same id exists
// (conditional put). Payment ids are deterministic per proposal/milestone,
// so a retried capture collapses onto the existing row: CreateOnce returns
// the stored row and created=false instead of writing a duplicate.
type IPaymentRepository interface {
	CreateOnce(ctx context.Context, p entities.Payment) (stored entities.Payment, created bool, err error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]entities.Payment, error)
}
