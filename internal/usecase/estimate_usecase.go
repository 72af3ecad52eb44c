package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"renomarket/internal/domain/entities"
	"renomarket/internal/infrastructure/config"
	"renomarket/internal/usecase/interfaces"
)

// JobEstimate is the composed estimation result: a labor-hour count, a
// locality- and crew-adjusted price range, and the bill of materials.
type JobEstimate struct {
	Min            float64                     `json:"min"`
	Max            float64                     `json:"max"`
	Average        float64                     `json:"average"`
	EstimatedHours float64                     `json:"estimatedHours"`
	Materials      []entities.MaterialEstimate `json:"materials"`
}

var ErrJobNotFound = errors.New("job not found")

// IEstimateUseCase converts a job category, attribute map and optional
// location into a price range and materials list.
type IEstimateUseCase interface {
	EstimateJob(ctx context.Context, category string, attrs entities.AttributeMap, loc *entities.Location) (JobEstimate, error)
	EstimateStoredJob(ctx context.Context, jobID string) (JobEstimate, error)
}

type EstimateUseCase struct {
	pricing     config.PricingConfig
	contractors interfaces.IContractorRepository
	materials   IMaterialsUseCase
	jobs        interfaces.IJobRepository
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(pricing config.PricingConfig, contractors interfaces.IContractorRepository, materials IMaterialsUseCase, jobs interfaces.IJobRepository) *EstimateUseCase {
	return &EstimateUseCase{pricing: pricing, contractors: contractors, materials: materials, jobs: jobs}
}

// EstimateStoredJob estimates a job already posted by a homeowner, using
// its stored category, attributes and location.
func (u *EstimateUseCase) EstimateStoredJob(ctx context.Context, jobID string) (JobEstimate, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return JobEstimate{}, ErrJobNotFound
	}
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return JobEstimate{}, err
	}
	if job.ID == "" {
		return JobEstimate{}, ErrJobNotFound
	}
	return u.EstimateJob(ctx, job.Category, job.Attributes, job.Location)
}

// EstimateJob always returns numbers: missing attributes take the
// category's configured defaults and unknown categories take the flat
// fallback hours. Only an empty category is an error.
func (u *EstimateUseCase) EstimateJob(ctx context.Context, category string, attrs entities.AttributeMap, loc *entities.Location) (JobEstimate, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return JobEstimate{}, ErrInvalidCategory
	}
	if attrs == nil {
		attrs = entities.AttributeMap{}
	}

	cat, known := u.pricing.Categories[category]
	hours := u.estimateHours(cat, known, attrs)

	minRate, maxRate := cat.MinRate, cat.MaxRate
	if !known {
		minRate, maxRate = u.pricing.FallbackMinRate, u.pricing.FallbackMaxRate
	}

	// Contractor-submitted rates for the category override the static base
	// rates via the arithmetic mean of submitted bounds.
	if u.contractors != nil {
		if subs, err := u.contractors.ListRateSubmissions(ctx, category); err != nil {
			log.Printf("[estimate][usecase] rate submissions unavailable category=%s err=%v", category, err)
		} else if len(subs) > 0 {
			var minSum, maxSum float64
			for _, s := range subs {
				minSum += s.MinRate
				maxSum += s.MaxRate
			}
			minRate = minSum / float64(len(subs))
			maxRate = maxSum / float64(len(subs))
		}
	}

	multiplier := 1.0
	if loc != nil {
		if m, ok := u.pricing.CityMultipliers[strings.ToLower(strings.TrimSpace(loc.City))]; ok {
			multiplier = m
		}
	}

	people := attrs.NumberOr("peopleNeeded", 1)
	if people < 1 {
		people = 1
	}

	est := JobEstimate{
		Min:            round2(minRate * multiplier * hours * people),
		Max:            round2(maxRate * multiplier * hours * people),
		EstimatedHours: hours,
		Materials:      []entities.MaterialEstimate{},
	}
	est.Average = round2((est.Min + est.Max) / 2)

	// Estimation is best-effort: a category without a materials catalog
	// still gets a price range, just with an empty materials list.
	if u.materials != nil {
		summary, err := u.materials.EstimateMaterials(ctx, category, attrs)
		switch {
		case err == nil:
			est.Materials = summary.Materials
		case errors.Is(err, ErrCategoryNotFound):
		default:
			log.Printf("[estimate][usecase] materials estimate failed category=%s err=%v", category, err)
		}
	}

	return est, nil
}

func (u *EstimateUseCase) estimateHours(cat config.CategoryPricing, known bool, attrs entities.AttributeMap) float64 {
	if !known {
		return u.pricing.FallbackHours
	}

	def := func(key string) float64 { return cat.Defaults[key] }

	switch cat.HourRule {
	case "painting":
		sqft := attrs.NumberOr("squareFootage", def("squareFootage"))
		rooms := attrs.NumberOr("numberOfRooms", def("numberOfRooms"))
		coats := attrs.NumberOr("coatsNeeded", def("coatsNeeded"))
		return math.Ceil(sqft*coats/100 + rooms)
	case "moving":
		rooms := attrs.NumberOr("numberOfRooms", def("numberOfRooms"))
		distance := attrs.NumberOr("distanceKm", def("distanceKm"))
		floorPenalty := 0.0
		if !attrs.Bool("hasElevator") {
			floorPenalty = attrs.NumberOr("floorNumber", def("floorNumber")) * 0.5
		}
		return math.Ceil(rooms + floorPenalty + distance/20 + 1)
	case "cleaning":
		sqft := attrs.NumberOr("squareFootage", def("squareFootage"))
		bathrooms := attrs.NumberOr("numberOfBathrooms", def("numberOfBathrooms"))
		return math.Ceil(sqft/400 + bathrooms*0.5 + 1)
	default:
		if cat.DefaultHours > 0 {
			return cat.DefaultHours
		}
		return u.pricing.FallbackHours
	}
}
