package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"renomarket/internal/domain/entities"
	"renomarket/internal/formula"
	"renomarket/internal/usecase/interfaces"
)

var (
	ErrInvalidCategory  = errors.New("invalid category")
	ErrCategoryNotFound = errors.New("category has no material templates")
)

// IMaterialsUseCase is the formula evaluation engine: it turns a category's
// material templates plus job attributes into a bill of materials.
type IMaterialsUseCase interface {
	EstimateMaterials(ctx context.Context, category string, attrs entities.AttributeMap) (entities.MaterialsSummary, error)
}

type MaterialsUseCase struct {
	templates interfaces.IMaterialTemplateRepository
}

var _ IMaterialsUseCase = (*MaterialsUseCase)(nil)

func NewMaterialsUseCase(templates interfaces.IMaterialTemplateRepository) *MaterialsUseCase {
	return &MaterialsUseCase{templates: templates}
}

// EstimateMaterials evaluates every template of the category against the
// job attributes.
//
// Failure policy: a single malformed formula degrades to the template's
// default quantity and never fails the request. The category itself having
// no templates is a hard failure (ErrCategoryNotFound) surfaced to the
// caller as a configuration error.
func (u *MaterialsUseCase) EstimateMaterials(ctx context.Context, category string, attrs entities.AttributeMap) (entities.MaterialsSummary, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return entities.MaterialsSummary{}, ErrInvalidCategory
	}

	tpls, err := u.templates.ListByCategory(ctx, category)
	if err != nil {
		return entities.MaterialsSummary{}, err
	}
	if len(tpls) == 0 {
		return entities.MaterialsSummary{}, ErrCategoryNotFound
	}

	vars := formulaVars(attrs)

	summary := entities.MaterialsSummary{Materials: []entities.MaterialEstimate{}}
	var totalCents, requiredCents int64
	for _, tpl := range tpls {
		qty := u.quantityFor(tpl, vars)

		if tpl.IsRequired && qty < 1 {
			qty = 1
		}
		if !tpl.IsRequired && qty <= 0 {
			// Optional line the job doesn't need: drop it entirely.
			continue
		}

		qty = round2(qty)
		line := entities.MaterialEstimate{
			Name:           tpl.Name,
			Quantity:       qty,
			Unit:           tpl.Unit,
			UnitPrice:      tpl.UnitPrice,
			EstimatedTotal: round2(qty * tpl.UnitPrice),
			IsRequired:     tpl.IsRequired,
		}
		summary.Materials = append(summary.Materials, line)

		// Aggregate in cents so the reported totals equal the sum of the
		// rounded lines exactly.
		totalCents += toCents(line.EstimatedTotal)
		if line.IsRequired {
			requiredCents += toCents(line.EstimatedTotal)
		}
	}

	summary.TotalEstimate = float64(totalCents) / 100
	summary.RequiredTotal = float64(requiredCents) / 100
	return summary, nil
}

func (u *MaterialsUseCase) quantityFor(tpl entities.MaterialTemplate, vars formula.Vars) float64 {
	qty, err := formula.Eval(tpl.Formula, vars)
	if err != nil {
		log.Printf("[materials][usecase] formula fallback category=%s material=%q err=%v", tpl.Category, tpl.Name, err)
		if tpl.DefaultQuantity > 0 {
			return tpl.DefaultQuantity
		}
		return 1
	}
	return qty
}

// formulaVars projects the numeric view of the attribute map for the
// evaluator. Non-numeric attributes are simply absent; formulas referencing
// them fail and fall back to defaults.
func formulaVars(attrs entities.AttributeMap) formula.VarMap {
	vars := make(formula.VarMap, len(attrs))
	for key := range attrs {
		if v, ok := attrs.Number(key); ok {
			vars[key] = v
		}
	}
	return vars
}
