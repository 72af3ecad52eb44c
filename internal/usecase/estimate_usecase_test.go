package usecase

import (
	"context"
	"errors"
	"testing"

	"renomarket/internal/domain/entities"
	"renomarket/internal/infrastructure/config"
	mock_interfaces "renomarket/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func testPricing() config.PricingConfig {
	return config.DefaultPolicy().Pricing
}

func TestEstimateUseCase_EstimateJob(t *testing.T) {
	t.Run("empty category", func(t *testing.T) {
		uc := NewEstimateUseCase(testPricing(), nil, nil, nil)
		_, err := uc.EstimateJob(context.Background(), "  ", nil, nil)
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("expected ErrInvalidCategory, got %v", err)
		}
	})

	t.Run("painting hour rule", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, nil, nil)

		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "painting").Return(nil, nil)

		est, err := uc.EstimateJob(context.Background(), "Painting", entities.AttributeMap{
			"squareFootage": 300.0,
			"numberOfRooms": 2.0,
			"coatsNeeded":   2.0,
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// ceil(300*2/100 + 2) = 8 hours at 45-75/h.
		if est.EstimatedHours != 8 {
			t.Fatalf("expected 8 hours, got %v", est.EstimatedHours)
		}
		if est.Min != 360 || est.Max != 600 || est.Average != 480 {
			t.Fatalf("unexpected range: %+v", est)
		}
	})

	t.Run("moving hour rule with elevator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, nil, nil)

		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "moving").Return(nil, nil).Times(2)

		withElevator, err := uc.EstimateJob(context.Background(), "moving", entities.AttributeMap{
			"numberOfRooms": 3.0,
			"floorNumber":   6.0,
			"distanceKm":    40.0,
			"hasElevator":   true,
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// ceil(3 + 0 + 40/20 + 1) = 6
		if withElevator.EstimatedHours != 6 {
			t.Fatalf("expected 6 hours with elevator, got %v", withElevator.EstimatedHours)
		}

		withoutElevator, err := uc.EstimateJob(context.Background(), "moving", entities.AttributeMap{
			"numberOfRooms": 3.0,
			"floorNumber":   6.0,
			"distanceKm":    40.0,
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// ceil(3 + 6*0.5 + 40/20 + 1) = 9
		if withoutElevator.EstimatedHours != 9 {
			t.Fatalf("expected 9 hours without elevator, got %v", withoutElevator.EstimatedHours)
		}
	})

	t.Run("missing attributes take category defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, nil, nil)

		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "cleaning").Return(nil, nil)

		est, err := uc.EstimateJob(context.Background(), "cleaning", nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// ceil(300/400 + 1*0.5 + 1) = 3 from the configured defaults.
		if est.EstimatedHours != 3 {
			t.Fatalf("expected 3 hours, got %v", est.EstimatedHours)
		}
	})

	t.Run("unknown category falls back to flat hours", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, nil, nil)

		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "landscaping").Return(nil, nil)

		est, err := uc.EstimateJob(context.Background(), "landscaping", entities.AttributeMap{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if est.EstimatedHours != 4 {
			t.Fatalf("expected fallback hours, got %v", est.EstimatedHours)
		}
		if est.Min != 140 || est.Max != 240 {
			t.Fatalf("expected fallback rates, got %+v", est)
		}
	})

	t.Run("city multiplier applies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, nil, nil)

		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "painting").Return(nil, nil)

		est, err := uc.EstimateJob(context.Background(), "painting", entities.AttributeMap{
			"squareFootage": 300.0,
			"numberOfRooms": 2.0,
			"coatsNeeded":   2.0,
		}, &entities.Location{City: "Toronto"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 8h * 45 * 1.15 = 414, 8h * 75 * 1.15 = 690
		if est.Min != 414 || est.Max != 690 {
			t.Fatalf("unexpected multiplied range: %+v", est)
		}
	})

	t.Run("contractor rate submissions override base rates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, nil, nil)

		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "painting").Return([]entities.RateSubmission{
			{MinRate: 50, MaxRate: 80},
			{MinRate: 60, MaxRate: 100},
		}, nil)

		est, err := uc.EstimateJob(context.Background(), "painting", entities.AttributeMap{
			"squareFootage": 300.0,
			"numberOfRooms": 2.0,
			"coatsNeeded":   2.0,
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// mean rates 55 and 90 over 8 hours.
		if est.Min != 440 || est.Max != 720 {
			t.Fatalf("unexpected overridden range: %+v", est)
		}
	})

	t.Run("people needed scales the range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, nil, nil)

		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "painting").Return(nil, nil)

		est, err := uc.EstimateJob(context.Background(), "painting", entities.AttributeMap{
			"squareFootage": 300.0,
			"numberOfRooms": 2.0,
			"coatsNeeded":   2.0,
			"peopleNeeded":  2.0,
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if est.Min != 720 || est.Max != 1200 {
			t.Fatalf("unexpected crew-scaled range: %+v", est)
		}
	})

	t.Run("materials are composed best-effort", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		templates := mock_interfaces.NewMockIMaterialTemplateRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, NewMaterialsUseCase(templates), nil)

		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "painting").Return(nil, nil).Times(2)
		templates.EXPECT().ListByCategory(gomock.Any(), "painting").Return([]entities.MaterialTemplate{
			{Category: "painting", Name: "Paint", Formula: "2", UnitPrice: 45, IsRequired: true},
		}, nil)

		est, err := uc.EstimateJob(context.Background(), "painting", entities.AttributeMap{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(est.Materials) != 1 || est.Materials[0].Name != "Paint" {
			t.Fatalf("expected materials list, got %+v", est.Materials)
		}

		// A category without a catalog still prices; materials stay empty.
		templates.EXPECT().ListByCategory(gomock.Any(), "painting").Return([]entities.MaterialTemplate{}, nil)
		est, err = uc.EstimateJob(context.Background(), "painting", entities.AttributeMap{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(est.Materials) != 0 {
			t.Fatalf("expected empty materials, got %+v", est.Materials)
		}
	})
}

func TestEstimateUseCase_EstimateStoredJob(t *testing.T) {
	t.Run("unknown job", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		jobs := mock_interfaces.NewMockIJobRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), nil, nil, jobs)

		jobs.EXPECT().GetByID(gomock.Any(), "job-missing").Return(entities.Job{}, nil)

		_, err := uc.EstimateStoredJob(context.Background(), "job-missing")
		if !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("estimates from the stored category and attributes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		jobs := mock_interfaces.NewMockIJobRepository(ctrl)
		contractors := mock_interfaces.NewMockIContractorRepository(ctrl)
		uc := NewEstimateUseCase(testPricing(), contractors, nil, jobs)

		jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.Job{
			ID:       "job-1",
			Category: "painting",
			Attributes: entities.AttributeMap{
				"squareFootage": 300.0,
				"numberOfRooms": 2.0,
				"coatsNeeded":   2.0,
			},
		}, nil)
		contractors.EXPECT().ListRateSubmissions(gomock.Any(), "painting").Return(nil, nil)

		est, err := uc.EstimateStoredJob(context.Background(), "job-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if est.EstimatedHours != 8 {
			t.Fatalf("expected 8 hours, got %v", est.EstimatedHours)
		}
		if est.Min != 360 || est.Max != 600 {
			t.Fatalf("unexpected range: %+v", est)
		}
	})
}
