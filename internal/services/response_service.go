package services

import (
	"math"
	"strings"
	"time"
)

// ResponseStore abstracts persistence for yearly ESG records. UpsertResponse
// must be atomic per (UserID, FinancialYear): it creates the record when
// absent, otherwise merges the non-nil fields over the stored row. Get returns
// nil (no error) for a missing record; Delete reports whether a row matched.
type ResponseStore interface {
	UpsertResponse(r *Response) (*Response, error)
	GetResponse(userID, financialYear string) (*Response, error)
	ListResponses(userID string) ([]*Response, error)
	DeleteResponse(userID, financialYear string) (bool, error)
}

const maxPeriodLen = 32

// SubmitRequest carries one questionnaire submission. Nil fields were not
// supplied and must not disturb previously stored values.
type SubmitRequest struct {
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
}

// Validate checks ranges and returns a field->reason map, empty when valid.
func (r *SubmitRequest) Validate() map[string]string {
	fields := map[string]string{}
	period := strings.TrimSpace(r.FinancialYear)
	if period == "" {
		fields["financial_year"] = "required"
	} else if len(period) > maxPeriodLen {
		fields["financial_year"] = "too long"
	}
	checkNonNegative(fields, "total_electricity_consumption", r.TotalElectricityConsumption)
	checkNonNegative(fields, "renewable_electricity_consumption", r.RenewableElectricityConsumption)
	checkNonNegative(fields, "total_fuel_consumption", r.TotalFuelConsumption)
	checkNonNegative(fields, "carbon_emissions", r.CarbonEmissions)
	checkNonNegativeInt(fields, "total_employees", r.TotalEmployees)
	checkNonNegativeInt(fields, "female_employees", r.FemaleEmployees)
	checkNonNegative(fields, "average_training_hours_per_employee", r.AverageTrainingHoursPerEmployee)
	checkNonNegative(fields, "community_investment_spend", r.CommunityInvestmentSpend)
	checkNonNegative(fields, "total_revenue", r.TotalRevenue)
	if p := r.PercentIndependentBoardMembers; p != nil {
		if math.IsNaN(*p) || math.IsInf(*p, 0) {
			fields["percent_independent_board_members"] = "must be a finite number"
		} else if *p < 0 || *p > 100 {
			fields["percent_independent_board_members"] = "must be between 0 and 100"
		}
	}
	if r.FemaleEmployees != nil && r.TotalEmployees != nil &&
		fields["female_employees"] == "" && fields["total_employees"] == "" &&
		*r.FemaleEmployees > *r.TotalEmployees {
		fields["female_employees"] = "cannot exceed total_employees"
	}
	return fields
}

func checkNonNegative(fields map[string]string, name string, v *float64) {
	if v == nil {
		return
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		fields[name] = "must be a finite number"
		return
	}
	if *v < 0 {
		fields[name] = "must be non-negative"
	}
}

func checkNonNegativeInt(fields map[string]string, name string, v *int) {
	if v != nil && *v < 0 {
		fields[name] = "must be non-negative"
	}
}

// ResponseService hosts the submission workflow and the owner-scoped queries.
type ResponseService struct {
	store ResponseStore
	now   func() time.Time
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates the payload, recomputes the derived ratios from the fields
// present in this submission only, and upserts the record keyed by
// (userID, financial year). Repeat submissions for the same year update the
// stored row in place; they never create a duplicate.
func (s *ResponseService) Submit(userID string, req *SubmitRequest) (*Response, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	if req == nil {
		return nil, NewInvalidError("request body required")
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	m := ComputeMetrics(MetricInputs{
		CarbonEmissions:                 req.CarbonEmissions,
		TotalRevenue:                    req.TotalRevenue,
		TotalElectricityConsumption:     req.TotalElectricityConsumption,
		RenewableElectricityConsumption: req.RenewableElectricityConsumption,
		TotalEmployees:                  req.TotalEmployees,
		FemaleEmployees:                 req.FemaleEmployees,
		CommunityInvestmentSpend:        req.CommunityInvestmentSpend,
	})

	rec := &Response{
		UserID:        userID,
		FinancialYear: strings.TrimSpace(req.FinancialYear),

		TotalElectricityConsumption:     req.TotalElectricityConsumption,
		RenewableElectricityConsumption: req.RenewableElectricityConsumption,
		TotalFuelConsumption:            req.TotalFuelConsumption,
		CarbonEmissions:                 req.CarbonEmissions,

		TotalEmployees:                  req.TotalEmployees,
		FemaleEmployees:                 req.FemaleEmployees,
		AverageTrainingHoursPerEmployee: req.AverageTrainingHoursPerEmployee,
		CommunityInvestmentSpend:        req.CommunityInvestmentSpend,

		PercentIndependentBoardMembers: req.PercentIndependentBoardMembers,
		DataPrivacyPolicy:              req.DataPrivacyPolicy,
		TotalRevenue:                   req.TotalRevenue,

		CarbonIntensity:           m.CarbonIntensity,
		RenewableElectricityRatio: m.RenewableElectricityRatio,
		DiversityRatio:            m.DiversityRatio,
		CommunitySpendRatio:       m.CommunitySpendRatio,

		UpdatedAt: s.now(),
	}

	stored, err := s.store.UpsertResponse(rec)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return rec, nil
	}
	return stored, nil
}

// List returns the caller's records ordered by financial year ascending.
func (s *ResponseService) List(userID string) ([]*Response, error) {
	return s.store.ListResponses(userID)
}

func (s *ResponseService) Get(userID, financialYear string) (*Response, error) {
	if strings.TrimSpace(financialYear) == "" {
		return nil, NewInvalidError("financial year required")
	}
	rec, err := s.store.GetResponse(userID, financialYear)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NewNotFoundError("no data found for financial year " + financialYear)
	}
	return rec, nil
}

func (s *ResponseService) Delete(userID, financialYear string) error {
	if strings.TrimSpace(financialYear) == "" {
		return NewInvalidError("financial year required")
	}
	ok, err := s.store.DeleteResponse(userID, financialYear)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("no data found for financial year " + financialYear)
	}
	return nil
}
