package interfaces

import (
	"context"
	"renomarket/internal/domain/entities"
)

// IContractorRepository abstracts DynamoDB persistence for contractor
// profiles and their rate submissions.
type IContractorRepository interface {
	GetByID(ctx context.Context, id string) (entities.Contractor, error)
	SetPaymentAccountID(ctx context.Context, id, accountID string) (entities.Contractor, error)
	ListRateSubmissions(ctx context.Context, category string) ([]entities.RateSubmission, error)
}
