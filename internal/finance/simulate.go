package finance

import "math"

// SimulationInput parameterizes a compound-growth projection. Rates are
// annual percentages; YearlyIncrease raises the monthly contribution once
// every twelve months when positive.
type SimulationInput struct {
	Initial        float64 `json:"initial"`
	Monthly        float64 `json:"monthly"`
	AnnualRate     float64 `json:"rate"`
	Years          float64 `json:"years"`
	Inflation      float64 `json:"inflation"`
	TaxRate        float64 `json:"taxRate"`
	YearlyIncrease float64 `json:"yearlyIncrease"`
}

// SimulationResult carries the projection plus its per-month histories.
// Histories have months+1 entries; index 0 is the starting position.
type SimulationResult struct {
	TotalInvested    float64   `json:"totalInvested"`
	GrossEarnings    float64   `json:"grossEarnings"`
	Taxes            float64   `json:"taxes"`
	NetEarnings      float64   `json:"netEarnings"`
	FinalValue       float64   `json:"finalValue"`
	RealFinalValue   float64   `json:"realFinalValue"`
	ReturnPercentage float64   `json:"returnPercentage"`
	YearlyReturn     float64   `json:"yearlyReturn"`
	Months           int       `json:"months"`
	BalanceHistory   []float64 `json:"balanceHistory"`
	InvestedHistory  []float64 `json:"investedHistory"`
	RealValueHistory []float64 `json:"realValueHistory"`
}

// Simulate iterates the projection month by month: the balance grows by
// the monthly rate, the contribution is added, and the inflation-deflated
// real value is tracked. The recurrence is exact; identical inputs produce
// identical floating-point output.
func Simulate(in SimulationInput) SimulationResult {
	years := in.Years
	if years == 0 {
		years = 1
	}
	monthlyRate := in.AnnualRate / 100 / 12
	monthlyInflation := in.Inflation / 100 / 12
	months := int(years * 12)

	balance := in.Initial
	currentMonthly := in.Monthly
	totalInvested := balance

	balanceHistory := []float64{balance}
	investedHistory := []float64{totalInvested}
	realValueHistory := []float64{balance}

	for i := 1; i <= months; i++ {
		if i%12 == 0 && in.YearlyIncrease > 0 {
			currentMonthly *= 1 + in.YearlyIncrease/100
		}
		balance = balance*(1+monthlyRate) + currentMonthly
		totalInvested += currentMonthly

		realValue := balance / math.Pow(1+monthlyInflation, float64(i))
		balanceHistory = append(balanceHistory, balance)
		investedHistory = append(investedHistory, totalInvested)
		realValueHistory = append(realValueHistory, realValue)
	}

	grossEarnings := balance - totalInvested
	taxes := grossEarnings * in.TaxRate / 100
	netEarnings := grossEarnings - taxes
	finalValue := totalInvested + netEarnings

	var returnPercentage, yearlyReturn float64
	if totalInvested > 0 {
		returnPercentage = netEarnings / totalInvested * 100
		yearlyReturn = (math.Pow(finalValue/totalInvested, 1/years) - 1) * 100
	}

	return SimulationResult{
		TotalInvested:    totalInvested,
		GrossEarnings:    grossEarnings,
		Taxes:            taxes,
		NetEarnings:      netEarnings,
		FinalValue:       finalValue,
		RealFinalValue:   realValueHistory[len(realValueHistory)-1],
		ReturnPercentage: returnPercentage,
		YearlyReturn:     yearlyReturn,
		Months:           months,
		BalanceHistory:   balanceHistory,
		InvestedHistory:  investedHistory,
		RealValueHistory: realValueHistory,
	}
}
