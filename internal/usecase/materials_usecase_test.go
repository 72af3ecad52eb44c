package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"renomarket/internal/domain/entities"
	mock_interfaces "renomarket/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestMaterialsUseCase_EstimateMaterials(t *testing.T) {
	t.Run("invalid category", func(t *testing.T) {
		uc := NewMaterialsUseCase(nil)
		_, err := uc.EstimateMaterials(context.Background(), "   ", entities.AttributeMap{})
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("expected ErrInvalidCategory, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMaterialTemplateRepository(ctrl)
		uc := NewMaterialsUseCase(repo)

		repo.EXPECT().ListByCategory(gomock.Any(), "painting").Return(nil, errors.New("db"))

		_, err := uc.EstimateMaterials(context.Background(), "painting", entities.AttributeMap{})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMaterialTemplateRepository(ctrl)
		uc := NewMaterialsUseCase(repo)

		repo.EXPECT().ListByCategory(gomock.Any(), "roofing").Return([]entities.MaterialTemplate{}, nil)

		_, err := uc.EstimateMaterials(context.Background(), " Roofing ", entities.AttributeMap{})
		if !errors.Is(err, ErrCategoryNotFound) {
			t.Fatalf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("evaluates formulas against attributes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMaterialTemplateRepository(ctrl)
		uc := NewMaterialsUseCase(repo)

		repo.EXPECT().ListByCategory(gomock.Any(), "painting").Return([]entities.MaterialTemplate{
			{Category: "painting", Name: "Paint", Formula: "ceil(squareFootage * coatsNeeded / 350)", Unit: "gallon", UnitPrice: 45.50, IsRequired: true},
			{Category: "painting", Name: "Painter's tape", Formula: "numberOfRooms * 2", Unit: "roll", UnitPrice: 6.25, IsRequired: true},
		}, nil)

		summary, err := uc.EstimateMaterials(context.Background(), "painting", entities.AttributeMap{
			"squareFootage": 700.0,
			"coatsNeeded":   2.0,
			"numberOfRooms": 3.0,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summary.Materials) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(summary.Materials))
		}
		paint := summary.Materials[0]
		if paint.Quantity != 4 || paint.EstimatedTotal != 182.00 {
			t.Fatalf("unexpected paint line: %+v", paint)
		}
		tape := summary.Materials[1]
		if tape.Quantity != 6 || tape.EstimatedTotal != 37.50 {
			t.Fatalf("unexpected tape line: %+v", tape)
		}
		if summary.TotalEstimate != 219.50 || summary.RequiredTotal != 219.50 {
			t.Fatalf("unexpected totals: %+v", summary)
		}
	})

	t.Run("required line is clamped to one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMaterialTemplateRepository(ctrl)
		uc := NewMaterialsUseCase(repo)

		repo.EXPECT().ListByCategory(gomock.Any(), "cleaning").Return([]entities.MaterialTemplate{
			{Category: "cleaning", Name: "Disinfectant", Formula: "numberOfBathrooms - 5", UnitPrice: 8, IsRequired: true},
		}, nil)

		summary, err := uc.EstimateMaterials(context.Background(), "cleaning", entities.AttributeMap{"numberOfBathrooms": 1.0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Materials[0].Quantity != 1 {
			t.Fatalf("expected clamped quantity 1, got %v", summary.Materials[0].Quantity)
		}
	})

	t.Run("optional line at zero or below is dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMaterialTemplateRepository(ctrl)
		uc := NewMaterialsUseCase(repo)

		repo.EXPECT().ListByCategory(gomock.Any(), "moving").Return([]entities.MaterialTemplate{
			{Category: "moving", Name: "Boxes", Formula: "numberOfRooms * 5", UnitPrice: 2.50, IsRequired: true},
			{Category: "moving", Name: "Piano dolly", Formula: "hasPiano - 1", UnitPrice: 40, IsRequired: false},
		}, nil)

		summary, err := uc.EstimateMaterials(context.Background(), "moving", entities.AttributeMap{
			"numberOfRooms": 2.0,
			"hasPiano":      false,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summary.Materials) != 1 || summary.Materials[0].Name != "Boxes" {
			t.Fatalf("expected the optional line dropped, got %+v", summary.Materials)
		}
	})

	t.Run("malformed formula falls back to default quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMaterialTemplateRepository(ctrl)
		uc := NewMaterialsUseCase(repo)

		repo.EXPECT().ListByCategory(gomock.Any(), "painting").Return([]entities.MaterialTemplate{
			{Category: "painting", Name: "Primer", Formula: "ceil(", DefaultQuantity: 2, UnitPrice: 30, IsRequired: true},
			{Category: "painting", Name: "Drop cloth", Formula: "unknownAttr * 2", UnitPrice: 12, IsRequired: true},
		}, nil)

		summary, err := uc.EstimateMaterials(context.Background(), "painting", entities.AttributeMap{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Materials[0].Quantity != 2 {
			t.Fatalf("expected default quantity 2, got %v", summary.Materials[0].Quantity)
		}
		// No default configured: a failing required line still yields one unit.
		if summary.Materials[1].Quantity != 1 {
			t.Fatalf("expected fallback quantity 1, got %v", summary.Materials[1].Quantity)
		}
	})

	t.Run("totals equal the sum of rounded lines", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIMaterialTemplateRepository(ctrl)
		uc := NewMaterialsUseCase(repo)

		repo.EXPECT().ListByCategory(gomock.Any(), "flooring").Return([]entities.MaterialTemplate{
			{Category: "flooring", Name: "Planks", Formula: "squareFootage / 3", UnitPrice: 1.99, IsRequired: true},
			{Category: "flooring", Name: "Underlay", Formula: "squareFootage / 100", UnitPrice: 24.99, IsRequired: true},
			{Category: "flooring", Name: "Trim", Formula: "squareFootage / 12", UnitPrice: 3.33, IsRequired: false},
		}, nil)

		summary, err := uc.EstimateMaterials(context.Background(), "flooring", entities.AttributeMap{"squareFootage": 455.0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var sum, requiredSum float64
		for _, line := range summary.Materials {
			sum += line.EstimatedTotal
			if line.IsRequired {
				requiredSum += line.EstimatedTotal
			}
		}
		if math.Abs(summary.TotalEstimate-sum) > 1e-9 {
			t.Fatalf("total %v != line sum %v", summary.TotalEstimate, sum)
		}
		if math.Abs(summary.RequiredTotal-requiredSum) > 1e-9 {
			t.Fatalf("required total %v != required line sum %v", summary.RequiredTotal, requiredSum)
		}
	})
}
