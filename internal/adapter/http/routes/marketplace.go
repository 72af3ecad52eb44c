package routes

import (
	"renomarket/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates   = "/estimates"
	PathJobs        = "/jobs"
	PathProposals   = "/proposals"
	PathPayments    = "/payments"
	PathContractors = "/contractors"
)

func addMarketplaceRoutes(
	rg *gin.RouterGroup,
	estimateHandler *handlers.EstimateHandler,
	proposalHandler *handlers.ProposalHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.POST("/materials", estimateHandler.EstimateMaterials)
	}

	jobs := rg.Group(PathJobs)
	{
		jobs.GET("/:job_id/estimate", estimateHandler.EstimateJobByID)
	}

	proposals := rg.Group(PathProposals)
	{
		proposals.POST("", proposalHandler.CreateProposal)
		proposals.POST("/score", proposalHandler.ScoreDraft)
		proposals.GET("/:proposal_id", proposalHandler.GetProposal)
		proposals.POST("/:proposal_id/send", proposalHandler.SendProposal)
		proposals.POST("/:proposal_id/view", proposalHandler.ViewProposal)
		proposals.POST("/:proposal_id/accept", proposalHandler.AcceptProposal)
		proposals.POST("/:proposal_id/reject", proposalHandler.RejectProposal)
		proposals.POST("/:proposal_id/cancel", proposalHandler.CancelProposal)
		proposals.GET("/:proposal_id/score", proposalHandler.ScoreProposal)
		proposals.GET("/:proposal_id/schedule", paymentHandler.GetSchedule)
		proposals.GET("/:proposal_id/schedule.pdf", paymentHandler.GetSchedulePDF)
		proposals.GET("/:proposal_id/payments", paymentHandler.ListPayments)
		proposals.POST("/:proposal_id/milestones/:seq/release", paymentHandler.ReleaseMilestone)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:payment_id", paymentHandler.GetPayment)
	}

	contractors := rg.Group(PathContractors)
	{
		contractors.POST("/:contractor_id/payment-account", paymentHandler.OnboardContractor)
	}
}
