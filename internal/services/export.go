package services

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"
)

var exportHeader = []string{
	"financial_year",
	"total_electricity_consumption", "renewable_electricity_consumption",
	"total_fuel_consumption", "carbon_emissions",
	"total_employees", "female_employees",
	"average_training_hours_per_employee", "community_investment_spend",
	"percent_independent_board_members", "data_privacy_policy", "total_revenue",
	"carbon_intensity", "renewable_electricity_ratio",
	"diversity_ratio", "community_spend_ratio",
	"updated_at",
}

// ExportResponsesCSV renders one row per financial year, ascending. Absent
// fields become empty cells so a spreadsheet shows missing data as blank
// rather than zero.
func ExportResponsesCSV(records []*Response) ([]byte, error) {
	sorted := make([]*Response, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FinancialYear < sorted[j].FinancialYear
	})

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write(exportHeader)
	for _, r := range sorted {
		rec := []string{
			r.FinancialYear,
			ftoa(r.TotalElectricityConsumption), ftoa(r.RenewableElectricityConsumption),
			ftoa(r.TotalFuelConsumption), ftoa(r.CarbonEmissions),
			ptoa(r.TotalEmployees), ptoa(r.FemaleEmployees),
			ftoa(r.AverageTrainingHoursPerEmployee), ftoa(r.CommunityInvestmentSpend),
			ftoa(r.PercentIndependentBoardMembers), btoa(r.DataPrivacyPolicy), ftoa(r.TotalRevenue),
			ftoa(r.CarbonIntensity), ftoa(r.RenewableElectricityRatio),
			ftoa(r.DiversityRatio), ftoa(r.CommunitySpendRatio),
			tstamp(r.UpdatedAt),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func ftoa(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func ptoa(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func btoa(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "true"
	}
	return "false"
}

func tstamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
