package interfaces

import (
	"context"
	"renomarket/internal/domain/entities"
)

// IMaterialTemplateRepository abstracts DynamoDB persistence for
// MaterialTemplate reference data.
//
// ListByCategory returns templates ordered by sort key. An empty slice means
// the category has no materials catalog; the use case decides whether that
// is a hard failure.
type IMaterialTemplateRepository interface {
	ListByCategory(ctx context.Context, category string) ([]entities.MaterialTemplate, error)
}
