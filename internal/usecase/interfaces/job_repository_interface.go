package interfaces

import (
	"context"
	"renomarket/internal/domain/entities"
)

// IJobRepository abstracts DynamoDB persistence for Job. Jobs are created by
// homeowners outside this service; the estimation components only read them.
type IJobRepository interface {
	GetByID(ctx context.Context, id string) (entities.Job, error)
}
