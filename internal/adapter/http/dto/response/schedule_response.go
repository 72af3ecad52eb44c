package response

import "renomarket/internal/domain/entities"

type MilestonePayoutResponse struct {
	Seq      int     `json:"seq"`
	Label    string  `json:"label"`
	Percent  float64 `json:"percent"`
	Amount   float64 `json:"amount"`
	Released bool    `json:"released"`
}

type ScheduleResponse struct {
	ProposalID string                    `json:"proposal_id"`
	Currency   string                    `json:"currency"`
	Payouts    []MilestonePayoutResponse `json:"payouts"`
}

func FromSchedule(proposalID, currency string, payouts []entities.MilestonePayout) ScheduleResponse {
	out := ScheduleResponse{ProposalID: proposalID, Currency: currency, Payouts: make([]MilestonePayoutResponse, 0, len(payouts))}
	for _, p := range payouts {
		out.Payouts = append(out.Payouts, MilestonePayoutResponse{
			Seq:      p.Seq,
			Label:    p.Label,
			Percent:  p.Percent,
			Amount:   p.Amount,
			Released: p.Released,
		})
	}
	return out
}
