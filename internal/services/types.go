package services

import "time"

// User is a registered account. Accounts own their yearly ESG records.
type User struct {
	ID        string
	Name      string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}

// Response is one ESG questionnaire record for a (user, financial year) pair.
// All inputs are optional; nil means the field was never supplied.
// Derived ratios are recomputed on every submission and never user-supplied.
type Response struct {
	UserID        string `json:"user_id"`
	FinancialYear string `json:"financial_year"`

	// Environmental
	TotalElectricityConsumption     *float64 `json:"total_electricity_consumption,omitempty"`
	RenewableElectricityConsumption *float64 `json:"renewable_electricity_consumption,omitempty"`
	TotalFuelConsumption            *float64 `json:"total_fuel_consumption,omitempty"`
	CarbonEmissions                 *float64 `json:"carbon_emissions,omitempty"`

	// Social
	TotalEmployees                  *int     `json:"total_employees,omitempty"`
	FemaleEmployees                 *int     `json:"female_employees,omitempty"`
	AverageTrainingHoursPerEmployee *float64 `json:"average_training_hours_per_employee,omitempty"`
	CommunityInvestmentSpend        *float64 `json:"community_investment_spend,omitempty"`

	// Governance
	PercentIndependentBoardMembers *float64 `json:"percent_independent_board_members,omitempty"`
	DataPrivacyPolicy              *bool    `json:"data_privacy_policy,omitempty"`
	TotalRevenue                   *float64 `json:"total_revenue,omitempty"`

	// Derived
	CarbonIntensity           *float64 `json:"carbon_intensity,omitempty"`
	RenewableElectricityRatio *float64 `json:"renewable_electricity_ratio,omitempty"`
	DiversityRatio            *float64 `json:"diversity_ratio,omitempty"`
	CommunitySpendRatio       *float64 `json:"community_spend_ratio,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
