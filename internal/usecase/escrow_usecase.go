package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"renomarket/internal/domain/entities"
	"renomarket/internal/infrastructure/config"
	"renomarket/internal/usecase/interfaces"
)

var (
	ErrInvalidAmount        = errors.New("deposit amount must be positive")
	ErrPayeeNotOnboarded    = errors.New("contractor has no payment account on file")
	ErrContractorNotFound   = errors.New("contractor not found")
	ErrMilestonesNot100     = errors.New("milestone percentages must sum to 100")
	ErrMilestoneOutOfRange  = errors.New("milestone sequence out of range")
	ErrProposalNotAccepted  = errors.New("proposal is not accepted")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentGatewayFailed = errors.New("payment gateway call failed")
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidContractorID  = errors.New("invalid contractor id")
)

// IEscrowUseCase is the escrow and milestone payment engine. It computes
// what is owed and drives captures against the payment processor; it never
// releases funds based on elapsed time.
type IEscrowUseCase interface {
	CaptureDeposit(ctx context.Context, p entities.Proposal) (entities.Payment, error)
	Schedule(ctx context.Context, p entities.Proposal) ([]entities.MilestonePayout, error)
	ReleaseMilestone(ctx context.Context, p entities.Proposal, seq int) (entities.Payment, error)
	OnboardContractor(ctx context.Context, contractorID, email, name string) (entities.Contractor, error)
	FindHeldDeposit(ctx context.Context, proposalID string) (entities.Payment, bool, error)
	GetPayment(ctx context.Context, id string) (entities.Payment, error)
	ListPayments(ctx context.Context, proposalID string) ([]entities.Payment, error)
}

type EscrowUseCase struct {
	cfg         config.EscrowConfig
	payments    interfaces.IPaymentRepository
	contractors interfaces.IContractorRepository
	gateway     interfaces.IPaymentGateway
	publisher   interfaces.IEventPublisher
}

var _ IEscrowUseCase = (*EscrowUseCase)(nil)

func NewEscrowUseCase(
	cfg config.EscrowConfig,
	payments interfaces.IPaymentRepository,
	contractors interfaces.IContractorRepository,
	gateway interfaces.IPaymentGateway,
	publisher interfaces.IEventPublisher,
) *EscrowUseCase {
	return &EscrowUseCase{cfg: cfg, payments: payments, contractors: contractors, gateway: gateway, publisher: publisher}
}

// Deterministic ledger row ids: one deposit row per proposal, one release
// row per proposal+milestone. The conditional put on these ids is what makes
// retried captures collapse instead of double-charging.
func depositPaymentID(proposalID string) string {
	return "dep-" + proposalID
}

func milestonePaymentID(proposalID string, seq int) string {
	return fmt.Sprintf("ms-%d-%s", seq, proposalID)
}

// CaptureDeposit captures the acceptance deposit for an accepted proposal.
//
// deposit = 10% of estimated cost, platform fee = 10% of the deposit, both
// half-up in cents; the net transfer is deposit minus fee so the ledger
// invariant amount = fee + net holds exactly. On gateway failure no Payment
// row is written: the whole capture may be retried.
func (u *EscrowUseCase) CaptureDeposit(ctx context.Context, p entities.Proposal) (entities.Payment, error) {
	costCents := toCents(p.EstimatedCost)
	deposit := pctOfCents(costCents, u.cfg.DepositPercent)
	if deposit <= 0 {
		return entities.Payment{}, ErrInvalidAmount
	}
	fee := pctOfCents(deposit, u.cfg.PlatformFeePercent)
	net := deposit - fee

	log.Printf("[escrow][usecase] deposit capture start proposal_id=%s deposit_cents=%d fee_cents=%d", p.ID, deposit, fee)

	// Idempotent retry: an existing held deposit is the answer, not an error.
	if existing, found, err := u.FindHeldDeposit(ctx, p.ID); err != nil {
		return entities.Payment{}, err
	} else if found {
		log.Printf("[escrow][usecase] deposit already held proposal_id=%s payment_id=%s", p.ID, existing.ID)
		return existing, nil
	}

	// The service can start without a configured processor; money movement
	// must fail cleanly then, never dereference a nil gateway.
	if u.gateway == nil {
		log.Printf("[escrow][usecase] gateway not configured, deposit capture rejected proposal_id=%s", p.ID)
		return entities.Payment{}, ErrGatewayNotConfigured
	}

	contractor, err := u.contractors.GetByID(ctx, p.ContractorID)
	if err != nil {
		return entities.Payment{}, err
	}
	if contractor.ID == "" {
		return entities.Payment{}, ErrContractorNotFound
	}
	if strings.TrimSpace(contractor.PaymentAccountID) == "" {
		log.Printf("[escrow][usecase] payee not onboarded proposal_id=%s contractor_id=%s", p.ID, p.ContractorID)
		return entities.Payment{}, ErrPayeeNotOnboarded
	}

	result, err := u.gateway.Capture(ctx, interfaces.CaptureRequest{
		AmountCents:        deposit,
		Currency:           u.cfg.Currency,
		DestinationAccount: contractor.PaymentAccountID,
		ApplicationFee:     fee,
		Description:        fmt.Sprintf("Deposit for proposal %s", p.ID),
		ExternalReference:  depositPaymentID(p.ID),
		Metadata:           map[string]interface{}{"proposal_id": p.ID, "job_id": p.JobID, "type": string(entities.PaymentTypeDeposit)},
	})
	if err != nil {
		// At-most-once: no row on processor error, the caller may retry the
		// whole capture.
		log.Printf("[escrow][usecase] gateway capture failed proposal_id=%s err=%v", p.ID, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
	}

	payment := entities.Payment{
		ID:                 depositPaymentID(p.ID),
		ProposalID:         p.ID,
		JobID:              p.JobID,
		Type:               entities.PaymentTypeDeposit,
		Status:             entities.PaymentStatusHeld,
		AmountCents:        deposit,
		PlatformFeeCents:   fee,
		NetAmountCents:     net,
		Currency:           u.cfg.Currency,
		ProviderPaymentID:  result.ProviderPaymentID,
		ConfirmationHandle: result.ConfirmationHandle,
		CreatedAt:          time.Now().UTC(),
	}
	stored, created, err := u.payments.CreateOnce(ctx, payment)
	if err != nil {
		return entities.Payment{}, err
	}
	if !created {
		log.Printf("[escrow][usecase] concurrent capture detected proposal_id=%s payment_id=%s", p.ID, stored.ID)
		return stored, nil
	}

	u.publish(ctx, interfaces.EventPaymentHeld, stored)
	log.Printf("[escrow][usecase] deposit capture success proposal_id=%s payment_id=%s provider_payment_id=%s", p.ID, stored.ID, stored.ProviderPaymentID)
	return stored, nil
}

// Schedule computes the milestone payment schedule for a proposal and marks
// the milestones already released. The final milestone absorbs the rounding
// remainder so the amounts reconcile to the estimated cost within one cent.
func (u *EscrowUseCase) Schedule(ctx context.Context, p entities.Proposal) ([]entities.MilestonePayout, error) {
	payouts, err := buildSchedule(p)
	if err != nil {
		return nil, err
	}

	released := map[int]bool{}
	if u.payments != nil {
		rows, err := u.payments.ListByProposalID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.Type == entities.PaymentTypeMilestone && row.Status == entities.PaymentStatusReleased {
				released[row.MilestoneSeq] = true
			}
		}
	}
	for i := range payouts {
		payouts[i].Released = released[payouts[i].Seq]
	}
	return payouts, nil
}

func buildSchedule(p entities.Proposal) ([]entities.MilestonePayout, error) {
	if !MilestonesSumTo100(p.PaymentMilestones) {
		return nil, ErrMilestonesNot100
	}

	payouts := make([]entities.MilestonePayout, len(p.PaymentMilestones))
	var allocated float64
	for i, m := range p.PaymentMilestones {
		amount := round2(p.EstimatedCost * m.Percent / 100)
		if i == len(p.PaymentMilestones)-1 {
			amount = round2(p.EstimatedCost - allocated)
		}
		allocated = round2(allocated + amount)
		payouts[i] = entities.MilestonePayout{
			Seq:     i + 1,
			Label:   m.Label,
			Percent: m.Percent,
			Amount:  amount,
		}
	}
	return payouts, nil
}

// ReleaseMilestone releases one milestone after an explicit homeowner
// confirmation. seq is 1-based into the proposal's milestone list.
func (u *EscrowUseCase) ReleaseMilestone(ctx context.Context, p entities.Proposal, seq int) (entities.Payment, error) {
	if p.Status != entities.ProposalStatusAccepted {
		return entities.Payment{}, ErrProposalNotAccepted
	}
	payouts, err := buildSchedule(p)
	if err != nil {
		return entities.Payment{}, err
	}
	if seq < 1 || seq > len(payouts) {
		return entities.Payment{}, ErrMilestoneOutOfRange
	}
	payout := payouts[seq-1]

	// A milestone already released is returned as-is.
	if existing, err := u.payments.GetByID(ctx, milestonePaymentID(p.ID, seq)); err != nil {
		return entities.Payment{}, err
	} else if existing.ID != "" {
		log.Printf("[escrow][usecase] milestone already released proposal_id=%s seq=%d", p.ID, seq)
		return existing, nil
	}

	if u.gateway == nil {
		log.Printf("[escrow][usecase] gateway not configured, milestone release rejected proposal_id=%s seq=%d", p.ID, seq)
		return entities.Payment{}, ErrGatewayNotConfigured
	}

	contractor, err := u.contractors.GetByID(ctx, p.ContractorID)
	if err != nil {
		return entities.Payment{}, err
	}
	if contractor.ID == "" {
		return entities.Payment{}, ErrContractorNotFound
	}
	if strings.TrimSpace(contractor.PaymentAccountID) == "" {
		return entities.Payment{}, ErrPayeeNotOnboarded
	}

	amount := toCents(payout.Amount)
	if amount <= 0 {
		return entities.Payment{}, ErrInvalidAmount
	}
	fee := pctOfCents(amount, u.cfg.PlatformFeePercent)

	result, err := u.gateway.Capture(ctx, interfaces.CaptureRequest{
		AmountCents:        amount,
		Currency:           u.cfg.Currency,
		DestinationAccount: contractor.PaymentAccountID,
		ApplicationFee:     fee,
		Description:        fmt.Sprintf("Milestone %d (%s) for proposal %s", seq, payout.Label, p.ID),
		ExternalReference:  milestonePaymentID(p.ID, seq),
		Metadata:           map[string]interface{}{"proposal_id": p.ID, "job_id": p.JobID, "type": string(entities.PaymentTypeMilestone), "seq": seq},
	})
	if err != nil {
		log.Printf("[escrow][usecase] milestone release gateway failed proposal_id=%s seq=%d err=%v", p.ID, seq, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
	}

	payment := entities.Payment{
		ID:                 milestonePaymentID(p.ID, seq),
		ProposalID:         p.ID,
		JobID:              p.JobID,
		Type:               entities.PaymentTypeMilestone,
		Status:             entities.PaymentStatusReleased,
		AmountCents:        amount,
		PlatformFeeCents:   fee,
		NetAmountCents:     amount - fee,
		Currency:           u.cfg.Currency,
		MilestoneSeq:       seq,
		ProviderPaymentID:  result.ProviderPaymentID,
		ConfirmationHandle: result.ConfirmationHandle,
		CreatedAt:          time.Now().UTC(),
	}
	stored, created, err := u.payments.CreateOnce(ctx, payment)
	if err != nil {
		return entities.Payment{}, err
	}
	if created {
		u.publish(ctx, interfaces.EventPaymentReleased, stored)
	}
	log.Printf("[escrow][usecase] milestone release success proposal_id=%s seq=%d payment_id=%s", p.ID, seq, stored.ID)
	return stored, nil
}

// OnboardContractor creates the processor-side customer account and stores
// its identifier on the contractor profile.
func (u *EscrowUseCase) OnboardContractor(ctx context.Context, contractorID, email, name string) (entities.Contractor, error) {
	contractorID = strings.TrimSpace(contractorID)
	if contractorID == "" {
		return entities.Contractor{}, ErrInvalidContractorID
	}

	contractor, err := u.contractors.GetByID(ctx, contractorID)
	if err != nil {
		return entities.Contractor{}, err
	}
	if contractor.ID == "" {
		return entities.Contractor{}, ErrContractorNotFound
	}
	if contractor.PaymentAccountID != "" {
		return contractor, nil
	}

	if u.gateway == nil {
		return entities.Contractor{}, ErrGatewayNotConfigured
	}

	accountID, err := u.gateway.CreateCustomerAccount(ctx, email, name)
	if err != nil {
		return entities.Contractor{}, fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
	}

	updated, err := u.contractors.SetPaymentAccountID(ctx, contractorID, accountID)
	if err != nil {
		return entities.Contractor{}, err
	}
	if updated.ID == "" {
		// Conditional update lost to a concurrent delete of the profile.
		return entities.Contractor{}, ErrContractorNotFound
	}
	log.Printf("[escrow][usecase] contractor onboarded contractor_id=%s account_id=%s", contractorID, accountID)
	return updated, nil
}

// FindHeldDeposit looks up the single held deposit row of a proposal.
func (u *EscrowUseCase) FindHeldDeposit(ctx context.Context, proposalID string) (entities.Payment, bool, error) {
	existing, err := u.payments.GetByID(ctx, depositPaymentID(proposalID))
	if err != nil {
		return entities.Payment{}, false, err
	}
	if existing.ID == "" || existing.Status != entities.PaymentStatusHeld {
		return entities.Payment{}, false, nil
	}
	return existing, true, nil
}

func (u *EscrowUseCase) GetPayment(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	p, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *EscrowUseCase) ListPayments(ctx context.Context, proposalID string) ([]entities.Payment, error) {
	return u.payments.ListByProposalID(ctx, strings.TrimSpace(proposalID))
}

// publish is fire-and-forget: notification failure never fails the
// financial operation.
func (u *EscrowUseCase) publish(ctx context.Context, routingKey string, body interface{}) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, routingKey, body); err != nil {
		log.Printf("[escrow][usecase] event publish failed routing_key=%s err=%v", routingKey, err)
	}
}
