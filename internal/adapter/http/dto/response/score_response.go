package response

import "renomarket/internal/usecase"

type ScoreResponse struct {
	Score     float64            `json:"score"`
	Tier      string             `json:"tier"`
	TierLabel string             `json:"tier_label"`
	Breakdown map[string]float64 `json:"breakdown"`
}

func FromScoreResult(r usecase.ScoreResult) ScoreResponse {
	return ScoreResponse{
		Score:     r.Score,
		Tier:      r.Tier,
		TierLabel: r.TierLabel,
		Breakdown: r.Breakdown,
	}
}
