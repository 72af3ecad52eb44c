package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"renomarket/internal/domain/entities"
	"renomarket/internal/infrastructure/config"
	"renomarket/internal/usecase/interfaces"
	mock_interfaces "renomarket/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func testEscrowConfig() config.EscrowConfig {
	return config.DefaultPolicy().Escrow
}

func acceptedProposal() entities.Proposal {
	return entities.Proposal{
		ID:            "prop-1",
		JobID:         "job-1",
		ContractorID:  "contractor-1",
		Status:        entities.ProposalStatusAccepted,
		EstimatedCost: 1000.00,
		PaymentMilestones: []entities.PaymentMilestone{
			{Label: "Start", Percent: 30},
			{Label: "Midpoint", Percent: 40},
			{Label: "Completion", Percent: 30},
		},
	}
}

func onboardedContractor() entities.Contractor {
	return entities.Contractor{ID: "contractor-1", Name: "North Shore Renovations", PaymentAccountID: "mp-acc-77"}
}

type escrowMocks struct {
	payments    *mock_interfaces.MockIPaymentRepository
	contractors *mock_interfaces.MockIContractorRepository
	gateway     *mock_interfaces.MockIPaymentGateway
	publisher   *mock_interfaces.MockIEventPublisher
}

func newEscrowForTest(t *testing.T) (*EscrowUseCase, escrowMocks, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	m := escrowMocks{
		payments:    mock_interfaces.NewMockIPaymentRepository(ctrl),
		contractors: mock_interfaces.NewMockIContractorRepository(ctrl),
		gateway:     mock_interfaces.NewMockIPaymentGateway(ctrl),
		publisher:   mock_interfaces.NewMockIEventPublisher(ctrl),
	}
	uc := NewEscrowUseCase(testEscrowConfig(), m.payments, m.contractors, m.gateway, m.publisher)
	return uc, m, ctrl
}

func TestEscrowUseCase_CaptureDeposit(t *testing.T) {
	t.Run("computes deposit, fee and net in cents", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.payments.EXPECT().GetByID(gomock.Any(), "dep-prop-1").Return(entities.Payment{}, nil)
		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(onboardedContractor(), nil)
		m.gateway.EXPECT().Capture(gomock.Any(), gomock.AssignableToTypeOf(interfaces.CaptureRequest{})).DoAndReturn(
			func(_ context.Context, req interfaces.CaptureRequest) (interfaces.CaptureResult, error) {
				if req.AmountCents != 10000 || req.ApplicationFee != 1000 {
					t.Fatalf("unexpected capture request: %+v", req)
				}
				if req.DestinationAccount != "mp-acc-77" || req.ExternalReference != "dep-prop-1" {
					t.Fatalf("unexpected capture request: %+v", req)
				}
				return interfaces.CaptureResult{ProviderPaymentID: "mp-990", ConfirmationHandle: "https://pay.example/990"}, nil
			},
		)
		m.payments.EXPECT().CreateOnce(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, bool, error) {
				return p, true, nil
			},
		)
		m.publisher.EXPECT().Publish(gomock.Any(), interfaces.EventPaymentHeld, gomock.Any()).Return(nil)

		payment, err := uc.CaptureDeposit(context.Background(), acceptedProposal())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.AmountCents != 10000 || payment.PlatformFeeCents != 1000 || payment.NetAmountCents != 9000 {
			t.Fatalf("unexpected amounts: %+v", payment)
		}
		if payment.AmountCents != payment.PlatformFeeCents+payment.NetAmountCents {
			t.Fatalf("ledger invariant broken: %+v", payment)
		}
		if payment.Status != entities.PaymentStatusHeld || payment.Type != entities.PaymentTypeDeposit {
			t.Fatalf("unexpected row: %+v", payment)
		}
		if payment.ProviderPaymentID != "mp-990" {
			t.Fatalf("expected provider id recorded, got %+v", payment)
		}
	})

	t.Run("zero cost is invalid", func(t *testing.T) {
		uc, _, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		p := acceptedProposal()
		p.EstimatedCost = 0
		if _, err := uc.CaptureDeposit(context.Background(), p); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("existing held deposit short-circuits", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		existing := entities.Payment{ID: "dep-prop-1", Status: entities.PaymentStatusHeld, AmountCents: 10000}
		m.payments.EXPECT().GetByID(gomock.Any(), "dep-prop-1").Return(existing, nil)

		payment, err := uc.CaptureDeposit(context.Background(), acceptedProposal())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.ID != "dep-prop-1" {
			t.Fatalf("expected existing row, got %+v", payment)
		}
	})

	t.Run("payee not onboarded", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.payments.EXPECT().GetByID(gomock.Any(), "dep-prop-1").Return(entities.Payment{}, nil)
		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(entities.Contractor{ID: "contractor-1"}, nil)

		if _, err := uc.CaptureDeposit(context.Background(), acceptedProposal()); !errors.Is(err, ErrPayeeNotOnboarded) {
			t.Fatalf("expected ErrPayeeNotOnboarded, got %v", err)
		}
	})

	t.Run("gateway failure writes no row", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.payments.EXPECT().GetByID(gomock.Any(), "dep-prop-1").Return(entities.Payment{}, nil)
		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(onboardedContractor(), nil)
		m.gateway.EXPECT().Capture(gomock.Any(), gomock.Any()).Return(interfaces.CaptureResult{}, errors.New("processor down"))

		if _, err := uc.CaptureDeposit(context.Background(), acceptedProposal()); !errors.Is(err, ErrPaymentGatewayFailed) {
			t.Fatalf("expected ErrPaymentGatewayFailed, got %v", err)
		}
	})

	t.Run("unconfigured gateway fails cleanly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEscrowUseCase(testEscrowConfig(), payments, contractors, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "dep-prop-1").Return(entities.Payment{}, nil)

		if _, err := uc.CaptureDeposit(context.Background(), acceptedProposal()); !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("concurrent capture returns the stored row", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.payments.EXPECT().GetByID(gomock.Any(), "dep-prop-1").Return(entities.Payment{}, nil)
		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(onboardedContractor(), nil)
		m.gateway.EXPECT().Capture(gomock.Any(), gomock.Any()).Return(interfaces.CaptureResult{ProviderPaymentID: "mp-991"}, nil)
		winner := entities.Payment{ID: "dep-prop-1", Status: entities.PaymentStatusHeld, ProviderPaymentID: "mp-990"}
		m.payments.EXPECT().CreateOnce(gomock.Any(), gomock.Any()).Return(winner, false, nil)

		payment, err := uc.CaptureDeposit(context.Background(), acceptedProposal())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.ProviderPaymentID != "mp-990" {
			t.Fatalf("expected the winner's row, got %+v", payment)
		}
	})
}

func TestEscrowUseCase_Schedule(t *testing.T) {
	t.Run("amounts reconcile to the estimated cost", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		p := acceptedProposal()
		p.EstimatedCost = 1000.01
		p.PaymentMilestones = []entities.PaymentMilestone{
			{Label: "A", Percent: 33.33},
			{Label: "B", Percent: 33.33},
			{Label: "C", Percent: 33.34},
		}
		m.payments.EXPECT().ListByProposalID(gomock.Any(), "prop-1").Return(nil, nil)

		payouts, err := uc.Schedule(context.Background(), p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var sum float64
		for _, payout := range payouts {
			sum += payout.Amount
		}
		if math.Abs(sum-p.EstimatedCost) > 0.01 {
			t.Fatalf("schedule %v does not reconcile to %v", sum, p.EstimatedCost)
		}
		// The remainder lands on the final milestone.
		if payouts[0].Amount != 333.30 || payouts[1].Amount != 333.30 || payouts[2].Amount != 333.41 {
			t.Fatalf("unexpected amounts: %+v", payouts)
		}
	})

	t.Run("marks released milestones", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.payments.EXPECT().ListByProposalID(gomock.Any(), "prop-1").Return([]entities.Payment{
			{ID: "ms-2-prop-1", Type: entities.PaymentTypeMilestone, Status: entities.PaymentStatusReleased, MilestoneSeq: 2},
		}, nil)

		payouts, err := uc.Schedule(context.Background(), acceptedProposal())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payouts[0].Released || !payouts[1].Released || payouts[2].Released {
			t.Fatalf("unexpected release flags: %+v", payouts)
		}
	})

	t.Run("incomplete schedule is a configuration error", func(t *testing.T) {
		uc, _, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		p := acceptedProposal()
		p.PaymentMilestones = []entities.PaymentMilestone{{Label: "Start", Percent: 40}}
		if _, err := uc.Schedule(context.Background(), p); !errors.Is(err, ErrMilestonesNot100) {
			t.Fatalf("expected ErrMilestonesNot100, got %v", err)
		}
	})
}

func TestEscrowUseCase_ReleaseMilestone(t *testing.T) {
	t.Run("releases one milestone", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.payments.EXPECT().GetByID(gomock.Any(), "ms-2-prop-1").Return(entities.Payment{}, nil)
		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(onboardedContractor(), nil)
		m.gateway.EXPECT().Capture(gomock.Any(), gomock.AssignableToTypeOf(interfaces.CaptureRequest{})).DoAndReturn(
			func(_ context.Context, req interfaces.CaptureRequest) (interfaces.CaptureResult, error) {
				// 40% of $1,000.00 with a 10% platform fee.
				if req.AmountCents != 40000 || req.ApplicationFee != 4000 {
					t.Fatalf("unexpected capture request: %+v", req)
				}
				return interfaces.CaptureResult{ProviderPaymentID: "mp-992"}, nil
			},
		)
		m.payments.EXPECT().CreateOnce(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, bool, error) {
				return p, true, nil
			},
		)
		m.publisher.EXPECT().Publish(gomock.Any(), interfaces.EventPaymentReleased, gomock.Any()).Return(nil)

		payment, err := uc.ReleaseMilestone(context.Background(), acceptedProposal(), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.ID != "ms-2-prop-1" || payment.MilestoneSeq != 2 {
			t.Fatalf("unexpected row: %+v", payment)
		}
		if payment.Status != entities.PaymentStatusReleased || payment.NetAmountCents != 36000 {
			t.Fatalf("unexpected row: %+v", payment)
		}
	})

	t.Run("requires an accepted proposal", func(t *testing.T) {
		uc, _, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		p := acceptedProposal()
		p.Status = entities.ProposalStatusSent
		if _, err := uc.ReleaseMilestone(context.Background(), p, 1); !errors.Is(err, ErrProposalNotAccepted) {
			t.Fatalf("expected ErrProposalNotAccepted, got %v", err)
		}
	})

	t.Run("sequence out of range", func(t *testing.T) {
		uc, _, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		if _, err := uc.ReleaseMilestone(context.Background(), acceptedProposal(), 0); !errors.Is(err, ErrMilestoneOutOfRange) {
			t.Fatalf("expected ErrMilestoneOutOfRange, got %v", err)
		}
		if _, err := uc.ReleaseMilestone(context.Background(), acceptedProposal(), 4); !errors.Is(err, ErrMilestoneOutOfRange) {
			t.Fatalf("expected ErrMilestoneOutOfRange, got %v", err)
		}
	})

	t.Run("already released returns the existing row", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		existing := entities.Payment{ID: "ms-1-prop-1", Status: entities.PaymentStatusReleased, MilestoneSeq: 1}
		m.payments.EXPECT().GetByID(gomock.Any(), "ms-1-prop-1").Return(existing, nil)

		payment, err := uc.ReleaseMilestone(context.Background(), acceptedProposal(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.ID != "ms-1-prop-1" {
			t.Fatalf("expected existing row, got %+v", payment)
		}
	})

	t.Run("unconfigured gateway fails cleanly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEscrowUseCase(testEscrowConfig(), payments, contractors, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "ms-2-prop-1").Return(entities.Payment{}, nil)

		if _, err := uc.ReleaseMilestone(context.Background(), acceptedProposal(), 2); !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})
}

func TestEscrowUseCase_OnboardContractor(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc, _, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		if _, err := uc.OnboardContractor(context.Background(), "  ", "a@b.com", "A"); !errors.Is(err, ErrInvalidContractorID) {
			t.Fatalf("expected ErrInvalidContractorID, got %v", err)
		}
	})

	t.Run("unknown contractor", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-9").Return(entities.Contractor{}, nil)

		if _, err := uc.OnboardContractor(context.Background(), "contractor-9", "a@b.com", "A"); !errors.Is(err, ErrContractorNotFound) {
			t.Fatalf("expected ErrContractorNotFound, got %v", err)
		}
	})

	t.Run("already onboarded is a no-op", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(onboardedContractor(), nil)

		c, err := uc.OnboardContractor(context.Background(), "contractor-1", "a@b.com", "A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.PaymentAccountID != "mp-acc-77" {
			t.Fatalf("expected existing account, got %+v", c)
		}
	})

	t.Run("creates and stores the processor account", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(entities.Contractor{ID: "contractor-1"}, nil)
		m.gateway.EXPECT().CreateCustomerAccount(gomock.Any(), "a@b.com", "A").Return("mp-acc-new", nil)
		m.contractors.EXPECT().SetPaymentAccountID(gomock.Any(), "contractor-1", "mp-acc-new").
			Return(entities.Contractor{ID: "contractor-1", PaymentAccountID: "mp-acc-new"}, nil)

		c, err := uc.OnboardContractor(context.Background(), "contractor-1", "a@b.com", "A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.PaymentAccountID != "mp-acc-new" {
			t.Fatalf("expected new account stored, got %+v", c)
		}
	})

	t.Run("unconfigured gateway fails cleanly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEscrowUseCase(testEscrowConfig(), payments, contractors, nil, nil)

		contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(entities.Contractor{ID: "contractor-1"}, nil)

		if _, err := uc.OnboardContractor(context.Background(), "contractor-1", "a@b.com", "A"); !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("profile deleted mid-onboarding", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.contractors.EXPECT().GetByID(gomock.Any(), "contractor-1").Return(entities.Contractor{ID: "contractor-1"}, nil)
		m.gateway.EXPECT().CreateCustomerAccount(gomock.Any(), "a@b.com", "A").Return("mp-acc-new", nil)
		m.contractors.EXPECT().SetPaymentAccountID(gomock.Any(), "contractor-1", "mp-acc-new").
			Return(entities.Contractor{}, nil)

		if _, err := uc.OnboardContractor(context.Background(), "contractor-1", "a@b.com", "A"); !errors.Is(err, ErrContractorNotFound) {
			t.Fatalf("expected ErrContractorNotFound, got %v", err)
		}
	})
}

func TestEscrowUseCase_GetPayment(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.payments.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{}, nil)

		if _, err := uc.GetPayment(context.Background(), "pay-1"); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		uc, m, ctrl := newEscrowForTest(t)
		defer ctrl.Finish()

		m.payments.EXPECT().GetByID(gomock.Any(), "dep-prop-1").Return(entities.Payment{ID: "dep-prop-1"}, nil)

		p, err := uc.GetPayment(context.Background(), "dep-prop-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "dep-prop-1" {
			t.Fatalf("unexpected payment: %+v", p)
		}
	})
}
