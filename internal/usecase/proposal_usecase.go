package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"renomarket/internal/domain/entities"
	"renomarket/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidProposalID  = errors.New("invalid proposal id")
	ErrProposalNotFound   = errors.New("proposal not found")
	ErrProposalNoSteps    = errors.New("proposal needs at least one step")
	ErrInvalidCost        = errors.New("estimated cost must be positive")
	ErrInvalidHoldback    = errors.New("holdback percent must be between 0 and 100")
	ErrDuplicateStepOrder = errors.New("step numbers must be unique")
	ErrProposalExpired    = errors.New("proposal has expired")
)

// TransitionConflictError reports an illegal lifecycle transition together
// with the statuses involved, so the client can refresh its view instead of
// retrying blindly.
type TransitionConflictError struct {
	Current   entities.ProposalStatus
	Requested entities.ProposalStatus
}

func (e *TransitionConflictError) Error() string {
	return fmt.Sprintf("cannot transition proposal from %s to %s", e.Current, e.Requested)
}

// AcceptResult pairs the accepted proposal with its captured deposit.
type AcceptResult struct {
	Proposal entities.Proposal
	Deposit  entities.Payment
}

// IProposalUseCase drives the proposal lifecycle state machine.
type IProposalUseCase interface {
	CreateDraft(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	Send(ctx context.Context, id string) (entities.Proposal, error)
	View(ctx context.Context, id string) (entities.Proposal, error)
	Accept(ctx context.Context, id string) (AcceptResult, error)
	Reject(ctx context.Context, id string) (entities.Proposal, error)
	Cancel(ctx context.Context, id string) (entities.Proposal, error)
}

type ProposalUseCase struct {
	repo      interfaces.IProposalRepository
	escrow    IEscrowUseCase
	publisher interfaces.IEventPublisher
	now       func() time.Time
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

func NewProposalUseCase(repo interfaces.IProposalRepository, escrow IEscrowUseCase, publisher interfaces.IEventPublisher) *ProposalUseCase {
	return &ProposalUseCase{repo: repo, escrow: escrow, publisher: publisher, now: time.Now}
}

// CreateDraft validates and stores a new draft proposal. Milestone
// percentages are a configuration error at authoring time, never at
// payment time.
func (u *ProposalUseCase) CreateDraft(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	if err := validateStructure(p); err != nil {
		return entities.Proposal{}, err
	}

	now := u.now().UTC()
	p.ID = uuid.NewString()
	p.Status = entities.ProposalStatusDraft
	p.CreatedAt = now
	p.UpdatedAt = now
	sort.Slice(p.Steps, func(i, j int) bool { return p.Steps[i].StepNumber < p.Steps[j].StepNumber })

	return u.repo.Create(ctx, p)
}

func validateStructure(p entities.Proposal) error {
	if p.HoldbackPercent < 0 || p.HoldbackPercent > 100 {
		return ErrInvalidHoldback
	}
	if len(p.PaymentMilestones) > 0 && !MilestonesSumTo100(p.PaymentMilestones) {
		return ErrMilestonesNot100
	}
	seen := map[int]bool{}
	for _, s := range p.Steps {
		if seen[s.StepNumber] {
			return ErrDuplicateStepOrder
		}
		seen[s.StepNumber] = true
	}
	return nil
}

func (u *ProposalUseCase) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

// Send publishes a draft to the homeowner. Requires at least one step, a
// positive estimated cost and a milestone schedule summing to 100; steps and
// milestones are immutable from here on.
func (u *ProposalUseCase) Send(ctx context.Context, id string) (entities.Proposal, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.Status != entities.ProposalStatusDraft {
		return entities.Proposal{}, &TransitionConflictError{Current: p.Status, Requested: entities.ProposalStatusSent}
	}
	if len(p.Steps) == 0 {
		return entities.Proposal{}, ErrProposalNoSteps
	}
	if p.EstimatedCost <= 0 {
		return entities.Proposal{}, ErrInvalidCost
	}
	if !MilestonesSumTo100(p.PaymentMilestones) {
		return entities.Proposal{}, ErrMilestonesNot100
	}
	if err := validateStructure(p); err != nil {
		return entities.Proposal{}, err
	}

	updated, err := u.transition(ctx, p, entities.ProposalStatusSent)
	if err != nil {
		return entities.Proposal{}, err
	}
	u.publish(ctx, interfaces.EventProposalSent, updated)
	return updated, nil
}

// View marks a sent proposal as viewed. Re-viewing is idempotent: an
// already-viewed proposal is returned without a write or an error.
func (u *ProposalUseCase) View(ctx context.Context, id string) (entities.Proposal, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.Status == entities.ProposalStatusViewed {
		return p, nil
	}
	if p.Status != entities.ProposalStatusSent {
		return entities.Proposal{}, &TransitionConflictError{Current: p.Status, Requested: entities.ProposalStatusViewed}
	}

	updated, err := u.repo.UpdateStatusIfCurrent(ctx, p.ID, p.Status, entities.ProposalStatusViewed)
	if err != nil {
		return entities.Proposal{}, err
	}
	if updated.ID == "" {
		// Lost a race; a concurrent view still counts as viewed.
		current, err := u.GetByID(ctx, id)
		if err != nil {
			return entities.Proposal{}, err
		}
		if current.Status == entities.ProposalStatusViewed {
			return current, nil
		}
		return entities.Proposal{}, &TransitionConflictError{Current: current.Status, Requested: entities.ProposalStatusViewed}
	}
	return updated, nil
}

// Accept moves a sent/viewed proposal to accepted and captures the deposit
// as one step. The status write is a conditional update keyed on the
// current status, so concurrent accepts cannot both win; if the capture
// then fails the status is reverted, leaving no partial state.
//
// Accepting an already-accepted proposal returns the existing held deposit
// (idempotent retry); without one it is a conflict, never a second charge.
func (u *ProposalUseCase) Accept(ctx context.Context, id string) (AcceptResult, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return AcceptResult{}, err
	}

	if p.Status == entities.ProposalStatusAccepted {
		deposit, found, err := u.escrow.FindHeldDeposit(ctx, p.ID)
		if err != nil {
			return AcceptResult{}, err
		}
		if found {
			return AcceptResult{Proposal: p, Deposit: deposit}, nil
		}
		return AcceptResult{}, &TransitionConflictError{Current: p.Status, Requested: entities.ProposalStatusAccepted}
	}
	if !entities.CanTransition(p.Status, entities.ProposalStatusAccepted) {
		return AcceptResult{}, &TransitionConflictError{Current: p.Status, Requested: entities.ProposalStatusAccepted}
	}

	if p.IsExpired(u.now()) {
		// Expiry is reported distinctly and flips the proposal as a side
		// effect, even when acceptance is the very next call after sending.
		expired, terr := u.transition(ctx, p, entities.ProposalStatusExpired)
		if terr != nil {
			log.Printf("[proposal][usecase] expiry transition failed proposal_id=%s err=%v", p.ID, terr)
		} else {
			u.publish(ctx, interfaces.EventProposalExpired, expired)
		}
		return AcceptResult{}, ErrProposalExpired
	}

	accepted, err := u.repo.UpdateStatusIfCurrent(ctx, p.ID, p.Status, entities.ProposalStatusAccepted)
	if err != nil {
		return AcceptResult{}, err
	}
	if accepted.ID == "" {
		current, gerr := u.GetByID(ctx, id)
		if gerr != nil {
			return AcceptResult{}, gerr
		}
		return AcceptResult{}, &TransitionConflictError{Current: current.Status, Requested: entities.ProposalStatusAccepted}
	}

	deposit, err := u.escrow.CaptureDeposit(ctx, accepted)
	if err != nil {
		// No partial state: put the proposal back where it was.
		if reverted, rerr := u.repo.UpdateStatusIfCurrent(ctx, p.ID, entities.ProposalStatusAccepted, p.Status); rerr != nil || reverted.ID == "" {
			log.Printf("[proposal][usecase] accept revert failed proposal_id=%s err=%v", p.ID, rerr)
		}
		return AcceptResult{}, err
	}

	u.publish(ctx, interfaces.EventProposalAccepted, accepted)
	log.Printf("[proposal][usecase] accepted proposal_id=%s deposit_payment_id=%s", accepted.ID, deposit.ID)
	return AcceptResult{Proposal: accepted, Deposit: deposit}, nil
}

// Reject declines a sent/viewed proposal.
func (u *ProposalUseCase) Reject(ctx context.Context, id string) (entities.Proposal, error) {
	return u.close(ctx, id, entities.ProposalStatusRejected)
}

// Cancel withdraws a sent/viewed proposal.
func (u *ProposalUseCase) Cancel(ctx context.Context, id string) (entities.Proposal, error) {
	return u.close(ctx, id, entities.ProposalStatusCancelled)
}

func (u *ProposalUseCase) close(ctx context.Context, id string, next entities.ProposalStatus) (entities.Proposal, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !entities.CanTransition(p.Status, next) {
		return entities.Proposal{}, &TransitionConflictError{Current: p.Status, Requested: next}
	}
	return u.transition(ctx, p, next)
}

func (u *ProposalUseCase) transition(ctx context.Context, p entities.Proposal, next entities.ProposalStatus) (entities.Proposal, error) {
	updated, err := u.repo.UpdateStatusIfCurrent(ctx, p.ID, p.Status, next)
	if err != nil {
		return entities.Proposal{}, err
	}
	if updated.ID == "" {
		current, gerr := u.GetByID(ctx, p.ID)
		if gerr != nil {
			return entities.Proposal{}, gerr
		}
		return entities.Proposal{}, &TransitionConflictError{Current: current.Status, Requested: next}
	}
	return updated, nil
}

func (u *ProposalUseCase) publish(ctx context.Context, routingKey string, body interface{}) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, routingKey, body); err != nil {
		log.Printf("[proposal][usecase] event publish failed routing_key=%s err=%v", routingKey, err)
	}
}
