package usecase

import (
	"math"
	"strings"

	"renomarket/internal/domain/entities"
	"renomarket/internal/infrastructure/config"
)

// Confidence tiers, ordered LOW < MEDIUM < HIGH.
const (
	TierHigh   = "HIGH"
	TierMedium = "MEDIUM"
	TierLow    = "LOW"
)

// Breakdown factor keys. Each factor contributes at most its configured
// weight; the factors sum directly to the total score.
const (
	FactorStepCoverage       = "stepCoverage"
	FactorInspectionCoverage = "inspectionCoverage"
	FactorCheckpointCoverage = "checkpointCoverage"
	FactorCodeReferences     = "codeReferences"
	FactorPaymentStructure   = "paymentStructure"
	FactorWarrantyTerms      = "warrantyTerms"
	FactorBCINBonus          = "bcinBonus"
)

// ScoreInput is the structural slice of a proposal the scorer reads.
type ScoreInput struct {
	Steps             []entities.SequenceStep
	PaymentMilestones []entities.PaymentMilestone
	HoldbackPercent   float64
	WarrantyTerms     string
	HasLicensedDesign bool
}

// ScoreResult is the scope confidence index with its per-factor breakdown.
type ScoreResult struct {
	Score     float64            `json:"score"`
	Tier      string             `json:"tier"`
	TierLabel string             `json:"tier_label"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// IScoringUseCase computes the scope confidence index of a proposal.
type IScoringUseCase interface {
	Score(in ScoreInput) ScoreResult
}

// ScoringUseCase is deterministic and does no I/O: the same input always
// yields the same score.
type ScoringUseCase struct {
	cfg config.ScoringConfig
}

var _ IScoringUseCase = (*ScoringUseCase)(nil)

func NewScoringUseCase(cfg config.ScoringConfig) *ScoringUseCase {
	return &ScoringUseCase{cfg: cfg}
}

func (u *ScoringUseCase) Score(in ScoreInput) ScoreResult {
	steps := len(in.Steps)
	var inspections, checkpoints, codeRefs int
	for _, s := range in.Steps {
		if s.RequiresInspection {
			inspections++
		}
		if s.IsMilestone {
			checkpoints++
		}
		if strings.TrimSpace(s.CodeReference) != "" {
			codeRefs++
		}
	}

	breakdown := map[string]float64{
		FactorStepCoverage:       coverage(steps, u.cfg.ExpectedSteps) * u.cfg.WeightStepCoverage,
		FactorInspectionCoverage: coverage(inspections, u.cfg.ExpectedInspections) * u.cfg.WeightInspectionCoverage,
		FactorCheckpointCoverage: coverage(checkpoints, u.cfg.ExpectedCheckpoints) * u.cfg.WeightCheckpointCoverage,
		FactorCodeReferences:     fraction(codeRefs, steps) * u.cfg.WeightCodeReferences,
		FactorPaymentStructure:   u.paymentStructureScore(in),
		FactorWarrantyTerms:      0,
		FactorBCINBonus:          0,
	}
	if strings.TrimSpace(in.WarrantyTerms) != "" {
		breakdown[FactorWarrantyTerms] = u.cfg.WeightWarrantyTerms
	}
	if in.HasLicensedDesign {
		breakdown[FactorBCINBonus] = u.cfg.WeightBCINBonus
	}

	var score float64
	for _, v := range breakdown {
		score += v
	}
	// The licensed-design bonus sits on top of the 1.00 weight budget; the
	// index itself stays on the 0-1 scale.
	score = math.Min(score, 1)
	score = math.Round(score*10000) / 10000

	result := ScoreResult{Score: score, Breakdown: breakdown}
	switch {
	case score >= u.cfg.HighThreshold:
		result.Tier, result.TierLabel = TierHigh, "Well-Scoped"
	case score >= u.cfg.MediumThreshold:
		result.Tier, result.TierLabel = TierMedium, "Partial Coverage"
	default:
		result.Tier, result.TierLabel = TierLow, "Needs Review"
	}
	return result
}

// paymentStructureScore: full weight for milestones summing to 100 with
// holdback inside the protective band; half weight when only the milestone
// sum holds; zero otherwise.
func (u *ScoringUseCase) paymentStructureScore(in ScoreInput) float64 {
	if !MilestonesSumTo100(in.PaymentMilestones) {
		return 0
	}
	if in.HoldbackPercent >= u.cfg.HoldbackMin && in.HoldbackPercent <= u.cfg.HoldbackMax {
		return u.cfg.WeightPaymentStructure
	}
	return u.cfg.WeightPaymentStructure / 2
}

// MilestonesSumTo100 checks the authoring-time invariant that milestone
// percentages cover exactly the contract value, with a one-basis-point
// tolerance for rounding.
func MilestonesSumTo100(milestones []entities.PaymentMilestone) bool {
	if len(milestones) == 0 {
		return false
	}
	var sum float64
	for _, m := range milestones {
		sum += m.Percent
	}
	return math.Abs(sum-100) <= 0.01
}

func coverage(have, expected int) float64 {
	if expected <= 0 {
		return 1
	}
	return math.Min(float64(have)/float64(expected), 1)
}

func fraction(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
