package api

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryStore keeps everything in process memory. It backs tests and local
// runs without a SQLite path configured.
type memoryStore struct {
	mu           sync.RWMutex
	usersByEmail map[string]*User
	// responses[userID][financialYear]
	responses map[string]map[string]*Response
}

func NewMemoryStore() Store {
	return newMemoryStore()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		usersByEmail: map[string]*User{},
		responses:    map[string]map[string]*Response{},
	}
}

func (s *memoryStore) AddUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := s.usersByEmail[key]; ok {
		return ErrDuplicateEmail
	}
	cp := *u
	s.usersByEmail[key] = &cp
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memoryStore) UpsertResponse(r *Response) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byYear := s.responses[r.UserID]
	if byYear == nil {
		byYear = map[string]*Response{}
		s.responses[r.UserID] = byYear
	}
	existing := byYear[r.FinancialYear]
	if existing == nil {
		cp := *r
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = cp.UpdatedAt
		}
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = time.Now().UTC()
		}
		byYear[r.FinancialYear] = &cp
		out := cp
		return &out, nil
	}
	mergeResponse(existing, r)
	out := *existing
	return &out, nil
}

// mergeResponse applies the non-nil fields of src over dst. Absent fields in a
// partial submission leave the stored values untouched.
func mergeResponse(dst, src *Response) {
	if src.TotalElectricityConsumption != nil {
		dst.TotalElectricityConsumption = src.TotalElectricityConsumption
	}
	if src.RenewableElectricityConsumption != nil {
		dst.RenewableElectricityConsumption = src.RenewableElectricityConsumption
	}
	if src.TotalFuelConsumption != nil {
		dst.TotalFuelConsumption = src.TotalFuelConsumption
	}
	if src.CarbonEmissions != nil {
		dst.CarbonEmissions = src.CarbonEmissions
	}
	if src.TotalEmployees != nil {
		dst.TotalEmployees = src.TotalEmployees
	}
	if src.FemaleEmployees != nil {
		dst.FemaleEmployees = src.FemaleEmployees
	}
	if src.AverageTrainingHoursPerEmployee != nil {
		dst.AverageTrainingHoursPerEmployee = src.AverageTrainingHoursPerEmployee
	}
	if src.CommunityInvestmentSpend != nil {
		dst.CommunityInvestmentSpend = src.CommunityInvestmentSpend
	}
	if src.PercentIndependentBoardMembers != nil {
		dst.PercentIndependentBoardMembers = src.PercentIndependentBoardMembers
	}
	if src.DataPrivacyPolicy != nil {
		dst.DataPrivacyPolicy = src.DataPrivacyPolicy
	}
	if src.TotalRevenue != nil {
		dst.TotalRevenue = src.TotalRevenue
	}
	if src.CarbonIntensity != nil {
		dst.CarbonIntensity = src.CarbonIntensity
	}
	if src.RenewableElectricityRatio != nil {
		dst.RenewableElectricityRatio = src.RenewableElectricityRatio
	}
	if src.DiversityRatio != nil {
		dst.DiversityRatio = src.DiversityRatio
	}
	if src.CommunitySpendRatio != nil {
		dst.CommunitySpendRatio = src.CommunitySpendRatio
	}
	if !src.UpdatedAt.IsZero() {
		dst.UpdatedAt = src.UpdatedAt
	} else {
		dst.UpdatedAt = time.Now().UTC()
	}
}

func (s *memoryStore) GetResponse(userID, financialYear string) (*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := s.responses[userID][financialYear]
	if r == nil {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *memoryStore) ListResponses(userID string) ([]*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Response, 0, len(s.responses[userID]))
	for _, r := range s.responses[userID] {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FinancialYear < out[j].FinancialYear })
	return out, nil
}

func (s *memoryStore) DeleteResponse(userID, financialYear string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byYear := s.responses[userID]
	if _, ok := byYear[financialYear]; !ok {
		return false, nil
	}
	delete(byYear, financialYear)
	return true, nil
}
