package api

import (
	"github.com/aditigupta-200/ESG-Questionnaire/internal/services"
)

type responseStoreAdapter struct {
	store Store
}

func newResponseStoreAdapter(store Store) services.ResponseStore {
	return &responseStoreAdapter{store: store}
}

func (a *responseStoreAdapter) UpsertResponse(r *services.Response) (*services.Response, error) {
	if r == nil {
		return nil, services.NewInvalidError("response required")
	}
	stored, err := a.store.UpsertResponse(convertServiceResponse(r))
	if err != nil {
		return nil, err
	}
	return convertAPIResponse(stored), nil
}

func (a *responseStoreAdapter) GetResponse(userID, financialYear string) (*services.Response, error) {
	r, err := a.store.GetResponse(userID, financialYear)
	if err != nil {
		return nil, err
	}
	return convertAPIResponse(r), nil
}

func (a *responseStoreAdapter) ListResponses(userID string) ([]*services.Response, error) {
	rs, err := a.store.ListResponses(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*services.Response, 0, len(rs))
	for _, r := range rs {
		out = append(out, convertAPIResponse(r))
	}
	return out, nil
}

func (a *responseStoreAdapter) DeleteResponse(userID, financialYear string) (bool, error) {
	return a.store.DeleteResponse(userID, financialYear)
}

func convertServiceResponse(r *services.Response) *Response {
	if r == nil {
		return nil
	}
	return &Response{
		UserID:        r.UserID,
		FinancialYear: r.FinancialYear,

		TotalElectricityConsumption:     r.TotalElectricityConsumption,
		RenewableElectricityConsumption: r.RenewableElectricityConsumption,
		TotalFuelConsumption:            r.TotalFuelConsumption,
		CarbonEmissions:                 r.CarbonEmissions,

		TotalEmployees:                  r.TotalEmployees,
		FemaleEmployees:                 r.FemaleEmployees,
		AverageTrainingHoursPerEmployee: r.AverageTrainingHoursPerEmployee,
		CommunityInvestmentSpend:        r.CommunityInvestmentSpend,

		PercentIndependentBoardMembers: r.PercentIndependentBoardMembers,
		DataPrivacyPolicy:              r.DataPrivacyPolicy,
		TotalRevenue:                   r.TotalRevenue,

		CarbonIntensity:           r.CarbonIntensity,
		RenewableElectricityRatio: r.RenewableElectricityRatio,
		DiversityRatio:            r.DiversityRatio,
		CommunitySpendRatio:       r.CommunitySpendRatio,

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func convertAPIResponse(r *Response) *services.Response {
	if r == nil {
		return nil
	}
	return &services.Response{
		UserID:        r.UserID,
		FinancialYear: r.FinancialYear,

		TotalElectricityConsumption:     r.TotalElectricityConsumption,
		RenewableElectricityConsumption: r.RenewableElectricityConsumption,
		TotalFuelConsumption:            r.TotalFuelConsumption,
		CarbonEmissions:                 r.CarbonEmissions,

		TotalEmployees:                  r.TotalEmployees,
		FemaleEmployees:                 r.FemaleEmployees,
		AverageTrainingHoursPerEmployee: r.AverageTrainingHoursPerEmployee,
		CommunityInvestmentSpend:        r.CommunityInvestmentSpend,

		PercentIndependentBoardMembers: r.PercentIndependentBoardMembers,
		DataPrivacyPolicy:              r.DataPrivacyPolicy,
		TotalRevenue:                   r.TotalRevenue,

		CarbonIntensity:           r.CarbonIntensity,
		RenewableElectricityRatio: r.RenewableElectricityRatio,
		DiversityRatio:            r.DiversityRatio,
		CommunitySpendRatio:       r.CommunitySpendRatio,

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

var _ services.ResponseStore = (*responseStoreAdapter)(nil)
