package response

import (
	"renomarket/internal/domain/entities"
	"renomarket/internal/usecase"
)

type MaterialResponse struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit,omitempty"`
	UnitPrice      float64 `json:"unit_price"`
	EstimatedTotal float64 `json:"estimated_total"`
	IsRequired     bool    `json:"is_required"`
}

// EstimateResponse is the composed estimation payload: price range, labor
// hours and the materials list.
type EstimateResponse struct {
	Min            float64            `json:"min"`
	Max            float64            `json:"max"`
	Average        float64            `json:"average"`
	EstimatedHours float64            `json:"estimatedHours"`
	Materials      []MaterialResponse `json:"materials"`
}

func FromJobEstimate(e usecase.JobEstimate) EstimateResponse {
	return EstimateResponse{
		Min:            e.Min,
		Max:            e.Max,
		Average:        e.Average,
		EstimatedHours: e.EstimatedHours,
		Materials:      fromMaterials(e.Materials),
	}
}

// MaterialsResponse is the standalone bill-of-materials payload with its
// reconciled totals.
type MaterialsResponse struct {
	Materials     []MaterialResponse `json:"materials"`
	RequiredTotal float64            `json:"required_total"`
	TotalEstimate float64            `json:"total_estimate"`
}

func FromMaterialsSummary(s entities.MaterialsSummary) MaterialsResponse {
	return MaterialsResponse{
		Materials:     fromMaterials(s.Materials),
		RequiredTotal: s.RequiredTotal,
		TotalEstimate: s.TotalEstimate,
	}
}

func fromMaterials(materials []entities.MaterialEstimate) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, MaterialResponse{
			Name:           m.Name,
			Quantity:       m.Quantity,
			Unit:           m.Unit,
			UnitPrice:      m.UnitPrice,
			EstimatedTotal: m.EstimatedTotal,
			IsRequired:     m.IsRequired,
		})
	}
	return out
}
