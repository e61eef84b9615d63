package electrical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoltageDropFormula(t *testing.T) {
	p := DefaultParams()
	// ΔU = 2 × 0.01786 × 50 × 16 / 2.5 = 11.43V
	drop := p.VoltageDrop(16, 50, 2.5, Copper)
	assert.InDelta(t, 11.43, drop, 0.01)
}

func TestLongerCableMoreVoltageDrop(t *testing.T) {
	p := DefaultParams()
	assert.Greater(t, p.VoltageDrop(16, 100, 2.5, Copper), p.VoltageDrop(16, 10, 2.5, Copper))
}

func TestBiggerSectionLessVoltageDrop(t *testing.T) {
	p := DefaultParams()
	assert.Greater(t, p.VoltageDrop(16, 50, 1.5, Copper), p.VoltageDrop(16, 50, 16.0, Copper))
}

func TestAluminumDropsMoreThanCopper(t *testing.T) {
	p := DefaultParams()
	assert.Greater(t, p.VoltageDrop(16, 50, 2.5, Aluminum), p.VoltageDrop(16, 50, 2.5, Copper))
}

func TestResistanceCalculation(t *testing.T) {
	p := DefaultParams()
	// R = 2 × 0.01786 × 100 / 10 = 0.3572 Ω
	assert.InDelta(t, 0.3572, p.Resistance(100, 10.0, Copper), 0.001)
}

func TestCurrentCapacityKnownSections(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 18.0, p.CurrentCapacity(2.5, Copper))
	assert.Equal(t, 31.0, p.CurrentCapacity(6.0, Copper))
	assert.Equal(t, 56.0, p.CurrentCapacity(16.0, Copper))
}

func TestCurrentCapacityUnknownSection(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 0.0, p.CurrentCapacity(3.0, Copper))
	assert.Equal(t, 0.0, p.CurrentCapacity(3.0, Aluminum))
	assert.Equal(t, 0.0, p.CurrentCapacity(-1.0, Copper))
}

func TestAluminumCapacityDerated(t *testing.T) {
	p := DefaultParams()
	// 78% of the copper figure, rounded to one decimal.
	assert.Equal(t, 14.0, p.CurrentCapacity(2.5, Aluminum))
	assert.Equal(t, 43.7, p.CurrentCapacity(16.0, Aluminum))
}

func TestRecommendSectionForCurrent(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1.5, p.RecommendSectionForCurrent(10))
	assert.Equal(t, 50.0, p.RecommendSectionForCurrent(100))
	// Beyond the table, the largest entry is returned.
	assert.Equal(t, 240.0, p.RecommendSectionForCurrent(500))
}

func TestCompliantCable(t *testing.T) {
	p := DefaultParams()
	report := p.CheckCableSizing(10, 20, 2.5, 230, Copper, CircuitTerminal)

	assert.True(t, report.IsCompliant)
	assert.True(t, report.IsVoltageDropOK)
	assert.True(t, report.IsCurrentOK)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, 3.0, report.MaxAllowedPercent)
}

func TestOvercurrentNotCompliant(t *testing.T) {
	p := DefaultParams()
	// 100A on 1.5mm² is far past the 13.5A rating.
	report := p.CheckCableSizing(100, 10, 1.5, 230, Copper, CircuitTerminal)

	assert.False(t, report.IsCurrentOK)
	assert.False(t, report.IsCompliant)
	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[0], "50 mm²")
}

func TestExcessiveVoltageDropNotCompliant(t *testing.T) {
	p := DefaultParams()
	report := p.CheckCableSizing(32, 500, 1.5, 230, Copper, CircuitTerminal)

	assert.False(t, report.IsVoltageDropOK)
	assert.False(t, report.IsCompliant)
}

func TestIndependentRecommendations(t *testing.T) {
	p := DefaultParams()
	// Violates both constraints: one recommendation each, not merged.
	report := p.CheckCableSizing(32, 500, 1.5, 230, Copper, CircuitTerminal)

	assert.False(t, report.IsCurrentOK)
	assert.False(t, report.IsVoltageDropOK)
	assert.Len(t, report.Recommendations, 2)
}

func TestDistributionClassThreshold(t *testing.T) {
	p := DefaultParams()
	report := p.CheckCableSizing(10, 20, 2.5, 230, Copper, CircuitDistribution)
	assert.Equal(t, 5.0, report.MaxAllowedPercent)
}

func TestReportRounding(t *testing.T) {
	p := DefaultParams()
	report := p.CheckCableSizing(16, 50, 2.5, 230, Copper, CircuitTerminal)

	assert.Equal(t, 11.43, report.VoltageDropV)
	assert.Equal(t, 4.97, report.VoltageDropPercent)
	assert.Equal(t, 0.7144, report.ResistanceOhm)
	assert.Equal(t, 182.89, report.PowerLossW)
}

func TestCustomParamsOverrideTables(t *testing.T) {
	// Regional tables swap in as data, the formulas stay put.
	p := Params{
		Resistivity:            map[string]float64{Copper: 0.02},
		AmpacityCopper:         map[float64]float64{2.5: 20.0},
		AluminumDerate:         0.78,
		MaxDropTerminalPct:     3.0,
		MaxDropDistributionPct: 5.0,
	}
	assert.InDelta(t, 12.8, p.VoltageDrop(16, 50, 2.5, Copper), 0.001)
	assert.Equal(t, 20.0, p.CurrentCapacity(2.5, Copper))
	assert.Equal(t, 2.5, p.RecommendSectionForCurrent(19))
}
