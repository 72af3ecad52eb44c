package usecase

import (
	"reflect"
	"testing"

	"renomarket/internal/domain/entities"
	"renomarket/internal/infrastructure/config"
)

func testScoring() config.ScoringConfig {
	return config.DefaultPolicy().Scoring
}

func fullMilestones() []entities.PaymentMilestone {
	return []entities.PaymentMilestone{
		{Label: "Start", Percent: 30},
		{Label: "Midpoint", Percent: 40},
		{Label: "Completion", Percent: 30},
	}
}

func TestScoringUseCase_Score(t *testing.T) {
	uc := NewScoringUseCase(testScoring())

	t.Run("empty proposal scores low", func(t *testing.T) {
		res := uc.Score(ScoreInput{})
		if res.Score != 0 {
			t.Fatalf("expected score 0, got %v", res.Score)
		}
		if res.Tier != TierLow || res.TierLabel != "Needs Review" {
			t.Fatalf("unexpected tier: %+v", res)
		}
	})

	t.Run("fully scoped proposal scores high", func(t *testing.T) {
		steps := make([]entities.SequenceStep, 8)
		for i := range steps {
			steps[i] = entities.SequenceStep{
				StepNumber:    i + 1,
				CodeReference: "OBC 9.23",
			}
		}
		steps[3].RequiresInspection = true
		steps[7].RequiresInspection = true
		steps[3].IsMilestone = true
		steps[7].IsMilestone = true

		res := uc.Score(ScoreInput{
			Steps:             steps,
			PaymentMilestones: fullMilestones(),
			HoldbackPercent:   10,
			WarrantyTerms:     "2-year workmanship warranty",
			HasLicensedDesign: true,
		})
		if res.Score != 1 {
			t.Fatalf("expected perfect score, got %v", res.Score)
		}
		if res.Tier != TierHigh || res.TierLabel != "Well-Scoped" {
			t.Fatalf("unexpected tier: %+v", res)
		}
	})

	t.Run("holdback outside band halves payment factor", func(t *testing.T) {
		inBand := uc.Score(ScoreInput{PaymentMilestones: fullMilestones(), HoldbackPercent: 10})
		outOfBand := uc.Score(ScoreInput{PaymentMilestones: fullMilestones(), HoldbackPercent: 40})
		if inBand.Breakdown[FactorPaymentStructure] != 0.10 {
			t.Fatalf("expected full payment factor, got %v", inBand.Breakdown[FactorPaymentStructure])
		}
		if outOfBand.Breakdown[FactorPaymentStructure] != 0.05 {
			t.Fatalf("expected half payment factor, got %v", outOfBand.Breakdown[FactorPaymentStructure])
		}
	})

	t.Run("milestones not summing to 100 zero the payment factor", func(t *testing.T) {
		res := uc.Score(ScoreInput{
			PaymentMilestones: []entities.PaymentMilestone{{Label: "Start", Percent: 50}},
			HoldbackPercent:   10,
		})
		if res.Breakdown[FactorPaymentStructure] != 0 {
			t.Fatalf("expected zero payment factor, got %v", res.Breakdown[FactorPaymentStructure])
		}
	})

	t.Run("adding structure never lowers the score", func(t *testing.T) {
		base := ScoreInput{
			Steps:             []entities.SequenceStep{{StepNumber: 1}, {StepNumber: 2}},
			PaymentMilestones: fullMilestones(),
			HoldbackPercent:   10,
		}
		baseScore := uc.Score(base).Score

		richer := base
		richer.Steps = append([]entities.SequenceStep{}, base.Steps...)
		richer.Steps = append(richer.Steps, entities.SequenceStep{StepNumber: 3, RequiresInspection: true, IsMilestone: true, CodeReference: "OBC 9.23"})
		richer.WarrantyTerms = "1-year warranty"
		richerScore := uc.Score(richer).Score

		if richerScore < baseScore {
			t.Fatalf("expected monotone score, base=%v richer=%v", baseScore, richerScore)
		}
	})

	t.Run("coverage caps at expected counts", func(t *testing.T) {
		steps := make([]entities.SequenceStep, 20)
		for i := range steps {
			steps[i] = entities.SequenceStep{StepNumber: i + 1}
		}
		res := uc.Score(ScoreInput{Steps: steps})
		if res.Breakdown[FactorStepCoverage] != 0.40 {
			t.Fatalf("expected capped step coverage, got %v", res.Breakdown[FactorStepCoverage])
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		in := ScoreInput{
			Steps:             []entities.SequenceStep{{StepNumber: 1, RequiresInspection: true}, {StepNumber: 2, CodeReference: "NBC 9.12"}},
			PaymentMilestones: fullMilestones(),
			HoldbackPercent:   7,
			WarrantyTerms:     "1-year warranty",
		}
		first := uc.Score(in)
		second := uc.Score(in)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("expected identical results, got %+v and %+v", first, second)
		}
	})
}

func TestMilestonesSumTo100(t *testing.T) {
	if MilestonesSumTo100(nil) {
		t.Fatal("expected empty schedule to fail")
	}
	if !MilestonesSumTo100([]entities.PaymentMilestone{{Percent: 33.33}, {Percent: 33.33}, {Percent: 33.34}}) {
		t.Fatal("expected 33.33+33.33+33.34 to pass")
	}
	if MilestonesSumTo100([]entities.PaymentMilestone{{Percent: 60}, {Percent: 30}}) {
		t.Fatal("expected 90 to fail")
	}
}
