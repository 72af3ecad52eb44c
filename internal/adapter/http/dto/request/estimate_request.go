package request

import (
	"strings"

	"renomarket/internal/domain/entities"
)

// LocationRequest is the optional job location used for locality rate
// adjustment.
type LocationRequest struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	City string  `json:"city"`
}

// EstimateRequest asks for a price range and bill of materials for a job
// category. Attributes are category-specific and may mix numbers, strings
// and booleans; the estimator substitutes defaults for whatever is missing.
type EstimateRequest struct {
	Category   string                 `json:"category" binding:"required"`
	Attributes map[string]interface{} `json:"attributes"`
	Location   *LocationRequest       `json:"location"`
}

func (r EstimateRequest) ResolveCategory() string {
	return strings.TrimSpace(r.Category)
}

func (r EstimateRequest) ResolveAttributes() entities.AttributeMap {
	if r.Attributes == nil {
		return entities.AttributeMap{}
	}
	return entities.AttributeMap(r.Attributes)
}

func (r EstimateRequest) ResolveLocation() *entities.Location {
	if r.Location == nil {
		return nil
	}
	return &entities.Location{Lat: r.Location.Lat, Lng: r.Location.Lng, City: r.Location.City}
}
