package interfaces

import (
	"context"
	"renomarket/internal/domain/entities"
)

// IProposalRepository abstracts DynamoDB persistence for Proposal.
//
// UpdateStatusIfCurrent is the serialization point of the lifecycle state
// machine: the write only succeeds when the stored status still equals
// expected (conditional update), so concurrent transitions on the same
// proposal cannot both win. A zero-value Proposal with nil error means the
// condition failed or the proposal does not exist; the use case maps that
// to Conflict or NotFound after re-reading.
type IProposalRepository interface {
	Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	UpdateStatusIfCurrent(ctx context.Context, id string, expected, next entities.ProposalStatus) (entities.Proposal, error)
}
