package api

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Response is the stored ESG questionnaire record for one financial year.
// Pointer fields distinguish "not supplied" from zero; a nil field is omitted
// from JSON and must not overwrite stored data on upsert.
type Response struct {
	UserID        string `json:"user_id"`
	FinancialYear string `json:"financial_year"`

	TotalElectricityConsumption     *float64 `json:"total_electricity_consumption,omitempty"`
	RenewableElectricityConsumption *float64 `json:"renewable_electricity_consumption,omitempty"`
	TotalFuelConsumption            *float64 `json:"total_fuel_consumption,omitempty"`
	CarbonEmissions                 *float64 `json:"carbon_emissions,omitempty"`

	TotalEmployees                  *int     `json:"total_employees,omitempty"`
	FemaleEmployees                 *int     `json:"female_employees,omitempty"`
	AverageTrainingHoursPerEmployee *float64 `json:"average_training_hours_per_employee,omitempty"`
	CommunityInvestmentSpend        *float64 `json:"community_investment_spend,omitempty"`

	PercentIndependentBoardMembers *float64 `json:"percent_independent_board_members,omitempty"`
	DataPrivacyPolicy              *bool    `json:"data_privacy_policy,omitempty"`
	TotalRevenue                   *float64 `json:"total_revenue,omitempty"`

	CarbonIntensity           *float64 `json:"carbon_intensity,omitempty"`
	RenewableElectricityRatio *float64 `json:"renewable_electricity_ratio,omitempty"`
	DiversityRatio            *float64 `json:"diversity_ratio,omitempty"`
	CommunitySpendRatio       *float64 `json:"community_spend_ratio,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
