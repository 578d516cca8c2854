package services

// MetricInputs are the raw questionnaire fields the derived ratios depend on.
type MetricInputs struct {
	CarbonEmissions                 *float64
	TotalRevenue                    *float64
	TotalElectricityConsumption     *float64
	RenewableElectricityConsumption *float64
	TotalEmployees                  *int
	FemaleEmployees                 *int
	CommunityInvestmentSpend        *float64
}

// Metrics are the computed sustainability ratios. A nil field means the ratio
// is undefined for this submission (its denominator was missing or zero).
type Metrics struct {
	CarbonIntensity           *float64
	RenewableElectricityRatio *float64
	DiversityRatio            *float64
	CommunitySpendRatio       *float64
}

// ComputeMetrics derives the four ratios from raw inputs. Pure; no I/O.
//
// Division rule: a missing numerator counts as zero, while a missing or zero
// denominator leaves the ratio undefined (nil) rather than reporting 0. A year
// with no electricity data is not the same as a year with 0% renewables.
func ComputeMetrics(in MetricInputs) Metrics {
	return Metrics{
		CarbonIntensity:           safeDiv(in.CarbonEmissions, in.TotalRevenue),
		RenewableElectricityRatio: safePercentage(in.RenewableElectricityConsumption, in.TotalElectricityConsumption),
		DiversityRatio:            safePercentage(intPtrToFloat(in.FemaleEmployees), intPtrToFloat(in.TotalEmployees)),
		CommunitySpendRatio:       safePercentage(in.CommunityInvestmentSpend, in.TotalRevenue),
	}
}

func safeDiv(numerator, denominator *float64) *float64 {
	if denominator == nil || *denominator == 0 {
		return nil
	}
	n := 0.0
	if numerator != nil {
		n = *numerator
	}
	v := n / *denominator
	return &v
}

func safePercentage(numerator, denominator *float64) *float64 {
	r := safeDiv(numerator, denominator)
	if r == nil {
		return nil
	}
	v := *r * 100
	return &v
}

func intPtrToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	v := float64(*p)
	return &v
}
