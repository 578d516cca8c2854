package services

import (
	"testing"
	"time"
)

type respStubStore struct {
	records map[string]map[string]*Response
}

func newRespStubStore() *respStubStore {
	return &respStubStore{records: map[string]map[string]*Response{}}
}

func (s *respStubStore) UpsertResponse(r *Response) (*Response, error) {
	byYear := s.records[r.UserID]
	if byYear == nil {
		byYear = map[string]*Response{}
		s.records[r.UserID] = byYear
	}
	cp := *r
	byYear[r.FinancialYear] = &cp
	out := cp
	return &out, nil
}

func (s *respStubStore) GetResponse(userID, year string) (*Response, error) {
	r := s.records[userID][year]
	if r == nil {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *respStubStore) ListResponses(userID string) ([]*Response, error) {
	out := []*Response{}
	for _, r := range s.records[userID] {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (s *respStubStore) DeleteResponse(userID, year string) (bool, error) {
	if _, ok := s.records[userID][year]; !ok {
		return false, nil
	}
	delete(s.records[userID], year)
	return true, nil
}

func TestSubmitComputesDerivedFields(t *testing.T) {
	svc := NewResponseService(newRespStubStore())
	svc.now = func() time.Time { return time.Unix(1700000000, 0).UTC() }

	rec, err := svc.Submit("u1", &SubmitRequest{
		FinancialYear:   "FY2023-24",
		CarbonEmissions: fptr(50),
		TotalRevenue:    fptr(1000),
		TotalEmployees:  iptr(100),
		FemaleEmployees: iptr(30),
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if rec.CarbonIntensity == nil || *rec.CarbonIntensity != 0.05 {
		t.Fatalf("carbon intensity = %v, want 0.05", rec.CarbonIntensity)
	}
	if rec.DiversityRatio == nil || *rec.DiversityRatio != 30 {
		t.Fatalf("diversity ratio = %v, want 30", rec.DiversityRatio)
	}
	// No electricity data at all: the ratio must be absent, not 0.
	if rec.RenewableElectricityRatio != nil {
		t.Fatalf("renewable ratio should be absent, got %v", *rec.RenewableElectricityRatio)
	}
	if rec.UpdatedAt != svc.now() {
		t.Fatalf("updated_at = %v", rec.UpdatedAt)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewResponseService(newRespStubStore())

	cases := []struct {
		req      SubmitRequest
		badField string
	}{
		{SubmitRequest{}, "financial_year"},
		{SubmitRequest{FinancialYear: "   "}, "financial_year"},
		{SubmitRequest{FinancialYear: "FY2024", CarbonEmissions: fptr(-1)}, "carbon_emissions"},
		{SubmitRequest{FinancialYear: "FY2024", TotalEmployees: iptr(-5)}, "total_employees"},
		{SubmitRequest{FinancialYear: "FY2024", PercentIndependentBoardMembers: fptr(120)}, "percent_independent_board_members"},
		{SubmitRequest{FinancialYear: "FY2024", FemaleEmployees: iptr(10), TotalEmployees: iptr(5)}, "female_employees"},
	}
	for _, c := range cases {
		_, err := svc.Submit("u1", &c.req)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorInvalid {
			t.Fatalf("expected validation error for %+v, got %v", c.req, err)
		}
		if se.Fields[c.badField] == "" {
			t.Fatalf("expected reason for field %q, got %v", c.badField, se.Fields)
		}
	}

	// Validation failures must not write anything.
	store := newRespStubStore()
	svc = NewResponseService(store)
	if _, err := svc.Submit("u1", &SubmitRequest{FinancialYear: "FY2024", TotalRevenue: fptr(-1)}); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(store.records) != 0 {
		t.Fatalf("store mutated on validation failure")
	}
}

func TestSubmitRequiresUser(t *testing.T) {
	svc := NewResponseService(newRespStubStore())
	_, err := svc.Submit("", &SubmitRequest{FinancialYear: "FY2024"})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestGetAndDeleteNotFound(t *testing.T) {
	store := newRespStubStore()
	svc := NewResponseService(store)

	if _, err := svc.Get("u1", "FY2021-22"); err == nil {
		t.Fatalf("expected not found")
	} else if se, _ := AsServiceError(err); se == nil || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found code, got %v", err)
	}

	if _, err := svc.Submit("u1", &SubmitRequest{FinancialYear: "FY2021-22", TotalRevenue: fptr(100)}); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := svc.Get("u1", "FY2021-22"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if err := svc.Delete("u1", "FY2021-22"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get("u1", "FY2021-22"); err == nil {
		t.Fatalf("expected not found after delete")
	}
	if err := svc.Delete("u1", "FY2021-22"); err == nil {
		t.Fatalf("expected not found on second delete")
	}
}
