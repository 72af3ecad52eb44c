package handlers

import (
	"context"
	"errors"
	"net/http"

	request "renomarket/internal/adapter/http/dto/request"
	response "renomarket/internal/adapter/http/dto/response"
	"renomarket/internal/domain/entities"
	"renomarket/internal/usecase"
	"renomarket/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidProposalPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid proposal payload", http.StatusBadRequest)

// ProposalHandler handles the proposal lifecycle and scope confidence
// scoring endpoints.
type ProposalHandler struct {
	proposals usecase.IProposalUseCase
	scoring   usecase.IScoringUseCase
}

func NewProposalHandler(proposals usecase.IProposalUseCase, scoring usecase.IScoringUseCase) *ProposalHandler {
	return &ProposalHandler{proposals: proposals, scoring: scoring}
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var payload request.ProposalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	proposal, err := h.proposals.CreateDraft(c.Request.Context(), payload.ToEntity())
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromProposal(proposal))
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	proposal, err := h.proposals.GetByID(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(proposal))
}

func (h *ProposalHandler) SendProposal(c *gin.Context) {
	h.patchProposalStatus(c, h.proposals.Send)
}

func (h *ProposalHandler) ViewProposal(c *gin.Context) {
	h.patchProposalStatus(c, h.proposals.View)
}

func (h *ProposalHandler) RejectProposal(c *gin.Context) {
	h.patchProposalStatus(c, h.proposals.Reject)
}

func (h *ProposalHandler) CancelProposal(c *gin.Context) {
	h.patchProposalStatus(c, h.proposals.Cancel)
}

// AcceptProposal runs the accept transition together with the deposit
// capture, so the response carries both the proposal and the escrow row.
func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	result, err := h.proposals.Accept(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.AcceptResponse{
		Proposal: response.FromProposal(result.Proposal),
		Deposit:  response.FromPayment(result.Deposit),
	})
}

// ScoreDraft scores an unsaved proposal structure, so contractors can
// iterate on scope before creating a draft.
func (h *ProposalHandler) ScoreDraft(c *gin.Context) {
	var payload request.ScoreRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	result := h.scoring.Score(usecase.ScoreInput{
		Steps:             payload.ToSteps(),
		PaymentMilestones: payload.ToMilestones(),
		HoldbackPercent:   payload.HoldbackPercent,
		WarrantyTerms:     payload.WarrantyTerms,
		HasLicensedDesign: payload.HasLicensedDesign,
	})

	c.JSON(http.StatusOK, response.FromScoreResult(result))
}

// ScoreProposal scores a stored proposal.
func (h *ProposalHandler) ScoreProposal(c *gin.Context) {
	proposal, err := h.proposals.GetByID(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result := h.scoring.Score(usecase.ScoreInput{
		Steps:             proposal.Steps,
		PaymentMilestones: proposal.PaymentMilestones,
		HoldbackPercent:   proposal.HoldbackPercent,
		WarrantyTerms:     proposal.WarrantyTerms,
		HasLicensedDesign: proposal.HasLicensedDesign,
	})

	c.JSON(http.StatusOK, response.FromScoreResult(result))
}

func (h *ProposalHandler) patchProposalStatus(
	c *gin.Context,
	updater func(ctx context.Context, id string) (entities.Proposal, error),
) {
	proposal, err := updater(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		appErr := mapProposalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(proposal))
}

func mapProposalError(err error) *pkg.AppError {
	var conflict *usecase.TransitionConflictError
	switch {
	case errors.Is(err, usecase.ErrInvalidProposalID),
		errors.Is(err, usecase.ErrProposalNoSteps),
		errors.Is(err, usecase.ErrInvalidCost),
		errors.Is(err, usecase.ErrInvalidHoldback),
		errors.Is(err, usecase.ErrDuplicateStepOrder):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMilestonesNot100):
		return pkg.NewDomainErrorSimple("MILESTONES_NOT_100", "Payment milestones must sum to 100 percent", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalExpired):
		return pkg.NewDomainErrorSimple("PROPOSAL_EXPIRED", "Proposal has expired", http.StatusConflict)
	case errors.As(err, &conflict):
		return pkg.NewDomainError("TRANSITION_CONFLICT", err.Error(), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrPayeeNotOnboarded):
		return pkg.NewDomainErrorSimple("PAYEE_NOT_ONBOARDED", "Contractor has no payment account", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_GATEWAY_UNAVAILABLE", "Payment processor not configured", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayFailed):
		return pkg.NewDomainError("PAYMENT_GATEWAY_FAILED", "Deposit capture failed", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
