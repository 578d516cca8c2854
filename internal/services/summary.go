package services

import "sort"

// SummaryRow is one point in the dashboard ratio series for a financial year.
type SummaryRow struct {
	FinancialYear             string   `json:"financial_year"`
	CarbonIntensity           *float64 `json:"carbon_intensity,omitempty"`
	RenewableElectricityRatio *float64 `json:"renewable_electricity_ratio,omitempty"`
	DiversityRatio            *float64 `json:"diversity_ratio,omitempty"`
	CommunitySpendRatio       *float64 `json:"community_spend_ratio,omitempty"`
}

// BuildSummary projects stored records onto their derived ratios, ordered by
// financial year ascending. Ratios the records never defined stay absent.
func BuildSummary(records []*Response) []SummaryRow {
	out := make([]SummaryRow, 0, len(records))
	for _, r := range records {
		out = append(out, SummaryRow{
			FinancialYear:             r.FinancialYear,
			CarbonIntensity:           r.CarbonIntensity,
			RenewableElectricityRatio: r.RenewableElectricityRatio,
			DiversityRatio:            r.DiversityRatio,
			CommunitySpendRatio:       r.CommunitySpendRatio,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FinancialYear < out[j].FinancialYear })
	return out
}
