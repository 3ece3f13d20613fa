package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulate_MatchesRecurrence(t *testing.T) {
	in := SimulationInput{Initial: 1000, Monthly: 100, AnnualRate: 12, Years: 1}
	res := Simulate(in)

	// Replay the recurrence independently month by month.
	balance := 1000.0
	invested := 1000.0
	for i := 1; i <= 12; i++ {
		balance = balance*(1+0.12/12) + 100
		invested += 100
	}

	assert.Equal(t, 12, res.Months)
	assert.Equal(t, invested, res.TotalInvested)
	assert.Equal(t, balance, res.BalanceHistory[12])
	assert.Equal(t, balance-invested, res.GrossEarnings)
	assert.InEpsilon(t, balance, res.FinalValue, 1e-12, "no taxes means final value equals balance")
	assert.InEpsilon(t, (balance-invested)/invested*100, res.ReturnPercentage, 1e-12)
}

func TestSimulate_Histories(t *testing.T) {
	res := Simulate(SimulationInput{Initial: 500, Monthly: 50, AnnualRate: 6, Years: 2})

	assert.Len(t, res.BalanceHistory, 25)
	assert.Len(t, res.InvestedHistory, 25)
	assert.Len(t, res.RealValueHistory, 25)
	assert.Equal(t, 500.0, res.BalanceHistory[0])
	assert.Equal(t, 500.0, res.InvestedHistory[0])
	assert.Equal(t, res.RealValueHistory[24], res.RealFinalValue)
}

func TestSimulate_TaxesReduceNetEarnings(t *testing.T) {
	res := Simulate(SimulationInput{Initial: 10000, AnnualRate: 12, Years: 1, TaxRate: 15})

	assert.Greater(t, res.GrossEarnings, 0.0)
	assert.InEpsilon(t, res.GrossEarnings*0.15, res.Taxes, 1e-12)
	assert.Equal(t, res.GrossEarnings-res.Taxes, res.NetEarnings)
	assert.Equal(t, res.TotalInvested+res.NetEarnings, res.FinalValue)
}

func TestSimulate_InflationErodesRealValue(t *testing.T) {
	res := Simulate(SimulationInput{Initial: 1000, AnnualRate: 0, Years: 1, Inflation: 6})

	assert.Equal(t, 1000.0, res.FinalValue)
	assert.Less(t, res.RealFinalValue, 1000.0)
	assert.InEpsilon(t, 1000/math.Pow(1+0.06/12, 12), res.RealFinalValue, 1e-12)
}

func TestSimulate_YearlyIncreaseBumpsContribution(t *testing.T) {
	flat := Simulate(SimulationInput{Monthly: 100, Years: 2})
	raised := Simulate(SimulationInput{Monthly: 100, Years: 2, YearlyIncrease: 10})

	// With a zero rate the balance is just the sum of contributions. The
	// bump lands before the month-12 and month-24 contributions, so months
	// 12..23 contribute 110 and month 24 contributes 121.
	assert.Equal(t, 2400.0, flat.TotalInvested)
	assert.InEpsilon(t, 11*100.0+12*110+121, raised.TotalInvested, 1e-12)
}

func TestSimulate_ZeroYearsDefaultsToOne(t *testing.T) {
	res := Simulate(SimulationInput{Initial: 100, Years: 0})
	assert.Equal(t, 12, res.Months)
}

func TestSimulate_NothingInvested(t *testing.T) {
	res := Simulate(SimulationInput{Years: 1})

	assert.Zero(t, res.TotalInvested)
	assert.Zero(t, res.ReturnPercentage)
	assert.Zero(t, res.YearlyReturn)
}

func TestSimulate_Deterministic(t *testing.T) {
	in := SimulationInput{Initial: 2500, Monthly: 300, AnnualRate: 10.5, Years: 5, Inflation: 4, TaxRate: 15, YearlyIncrease: 5}
	assert.Equal(t, Simulate(in), Simulate(in))
}
