package handlers

import (
	"errors"
	"net/http"

	request "renomarket/internal/adapter/http/dto/request"
	response "renomarket/internal/adapter/http/dto/response"
	"renomarket/internal/usecase"
	"renomarket/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid estimate payload", http.StatusBadRequest)

// EstimateHandler handles HTTP requests for job estimation: the composed
// price range and the standalone bill of materials.
type EstimateHandler struct {
	estimates usecase.IEstimateUseCase
	materials usecase.IMaterialsUseCase
}

func NewEstimateHandler(estimates usecase.IEstimateUseCase, materials usecase.IMaterialsUseCase) *EstimateHandler {
	return &EstimateHandler{estimates: estimates, materials: materials}
}

// CreateEstimate computes the hour and price estimate for a job category.
// Unknown attributes are ignored and missing ones are defaulted, so this
// never fails on sparse input.
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.estimates.EstimateJob(c.Request.Context(), payload.ResolveCategory(), payload.ResolveAttributes(), payload.ResolveLocation())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobEstimate(estimate))
}

// EstimateJobByID estimates a stored job from its persisted category,
// attributes and location.
func (h *EstimateHandler) EstimateJobByID(c *gin.Context) {
	estimate, err := h.estimates.EstimateStoredJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobEstimate(estimate))
}

// EstimateMaterials returns the bill of materials alone, with its
// reconciled required and total amounts.
func (h *EstimateHandler) EstimateMaterials(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	summary, err := h.materials.EstimateMaterials(c.Request.Context(), payload.ResolveCategory(), payload.ResolveAttributes())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromMaterialsSummary(summary))
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCategory):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCategoryNotFound):
		return pkg.NewDomainErrorSimple("CATEGORY_NOT_FOUND", "No material templates for this category", http.StatusNotFound)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
