package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	request "renomarket/internal/adapter/http/dto/request"
	response "renomarket/internal/adapter/http/dto/response"
	"renomarket/internal/domain/entities"
	"renomarket/internal/usecase"
	"renomarket/pkg"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

var errInvalidOnboardPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid onboarding payload", http.StatusBadRequest)

// PaymentHandler handles the escrow endpoints: milestone schedules,
// releases, the payment ledger and contractor onboarding.
type PaymentHandler struct {
	escrow    usecase.IEscrowUseCase
	proposals usecase.IProposalUseCase
	currency  string
}

func NewPaymentHandler(escrow usecase.IEscrowUseCase, proposals usecase.IProposalUseCase, currency string) *PaymentHandler {
	return &PaymentHandler{escrow: escrow, proposals: proposals, currency: currency}
}

func (h *PaymentHandler) GetSchedule(c *gin.Context) {
	proposal, payouts, appErr := h.loadSchedule(c)
	if appErr != nil {
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSchedule(proposal.ID, h.currency, payouts))
}

// GetSchedulePDF renders the milestone schedule as a printable document
// for homeowner and contractor records.
func (h *PaymentHandler) GetSchedulePDF(c *gin.Context) {
	proposal, payouts, appErr := h.loadSchedule(c)
	if appErr != nil {
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var buf bytes.Buffer
	if err := renderSchedulePDF(&buf, proposal, payouts, h.currency); err != nil {
		internal := pkg.NewDomainError("INTERNAL_ERROR", "Failed to render schedule", err, http.StatusInternalServerError)
		c.JSON(internal.HTTPStatus, internal.ToHTTPError())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=schedule-%s.pdf", proposal.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *PaymentHandler) ReleaseMilestone(c *gin.Context) {
	seq, err := strconv.Atoi(c.Param("seq"))
	if err != nil {
		badSeq := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Milestone sequence must be a number", http.StatusBadRequest)
		c.JSON(badSeq.HTTPStatus, badSeq.ToHTTPError())
		return
	}

	proposal, appErr := h.loadProposal(c)
	if appErr != nil {
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	payout, err := h.escrow.ReleaseMilestone(c.Request.Context(), proposal, seq)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payout))
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.escrow.GetPayment(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.escrow.ListPayments(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// OnboardContractor creates the processor customer account the contractor
// needs before any deposit can be captured for them.
func (h *PaymentHandler) OnboardContractor(c *gin.Context) {
	var payload request.OnboardRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOnboardPayload.HTTPStatus, errInvalidOnboardPayload.ToHTTPError())
		return
	}

	contractor, err := h.escrow.OnboardContractor(c.Request.Context(), c.Param("contractor_id"), payload.Email, payload.Name)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.OnboardResponse{
		ContractorID:     contractor.ID,
		PaymentAccountID: contractor.PaymentAccountID,
	})
}

func (h *PaymentHandler) loadProposal(c *gin.Context) (entities.Proposal, *pkg.AppError) {
	proposal, err := h.proposals.GetByID(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		return entities.Proposal{}, mapProposalError(err)
	}
	return proposal, nil
}

func (h *PaymentHandler) loadSchedule(c *gin.Context) (entities.Proposal, []entities.MilestonePayout, *pkg.AppError) {
	proposal, appErr := h.loadProposal(c)
	if appErr != nil {
		return entities.Proposal{}, nil, appErr
	}

	payouts, err := h.escrow.Schedule(c.Request.Context(), proposal)
	if err != nil {
		return entities.Proposal{}, nil, mapPaymentError(err)
	}
	return proposal, payouts, nil
}

func renderSchedulePDF(buf *bytes.Buffer, proposal entities.Proposal, payouts []entities.MilestonePayout, currency string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetMargins(10, 10, 10)

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(190, 12, "Payment Milestone Schedule")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 7, "Proposal:")
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(150, 7, proposal.ID)
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 7, "Total cost:")
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(150, 7, fmt.Sprintf("%.2f %s", proposal.EstimatedCost, currency))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(15, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(85, 8, "Milestone", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Percent", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Released", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, payout := range payouts {
		released := "no"
		if payout.Released {
			released = "yes"
		}
		pdf.CellFormat(15, 8, strconv.Itoa(payout.Seq), "1", 0, "C", false, 0, "")
		pdf.CellFormat(85, 8, payout.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f%%", payout.Percent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", payout.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 8, released, "1", 1, "C", false, 0, "")
	}

	return pdf.Output(buf)
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidContractorID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amount must be positive", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMilestonesNot100):
		return pkg.NewDomainErrorSimple("MILESTONES_NOT_100", "Payment milestones must sum to 100 percent", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMilestoneOutOfRange):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Milestone sequence out of range", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProposalNotAccepted):
		return pkg.NewDomainErrorSimple("TRANSITION_CONFLICT", "Proposal is not accepted", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrContractorNotFound):
		return pkg.NewDomainErrorSimple("CONTRACTOR_NOT_FOUND", "Contractor not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPayeeNotOnboarded):
		return pkg.NewDomainErrorSimple("PAYEE_NOT_ONBOARDED", "Contractor has no payment account", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_GATEWAY_UNAVAILABLE", "Payment processor not configured", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayFailed):
		return pkg.NewDomainError("PAYMENT_GATEWAY_FAILED", "Payment processor call failed", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
