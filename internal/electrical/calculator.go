// Package electrical sizes cables against IEC 60364 limits: voltage
// drop, current capacity, resistance and line losses.
//
// Formulas (single-phase, round-trip conductor):
//
//	voltage drop   ΔU  = 2 × ρ × L × I / S
//	drop percent   ΔU% = ΔU / U × 100
//	resistance     R   = 2 × ρ × L / S
//	power loss     P   = R × I²
package electrical

import (
	"fmt"
	"math"
	"sort"
)

// Conductor materials
const (
	Copper   = "copper"
	Aluminum = "aluminum"
)

// Circuit classes and their IEC voltage-drop limits
const (
	CircuitTerminal     = "terminal"     // max 3% drop
	CircuitDistribution = "distribution" // max 5% drop
)

// Params carries the numeric tables the calculator works from. Keeping
// them as data lets a different standard or region swap them out without
// touching the formulas.
type Params struct {
	// Resistivity at 20°C in Ω·mm²/m, keyed by conductor material.
	Resistivity map[string]float64

	// Ampacity in A for copper, method B1, 3 conductors (IEC 60364-5-52),
	// keyed by standard section in mm².
	AmpacityCopper map[float64]float64

	// AluminumDerate scales a copper ampacity entry for aluminum.
	// Approximation, not a sourced table; validate against the standard
	// before production use.
	AluminumDerate float64

	MaxDropTerminalPct     float64
	MaxDropDistributionPct float64
}

// DefaultParams returns the IEC 60364 tables.
func DefaultParams() Params {
	return Params{
		Resistivity: map[string]float64{
			Copper:   0.01786,
			Aluminum: 0.02941,
		},
		AmpacityCopper: map[float64]float64{
			1.5: 13.5, 2.5: 18.0, 4.0: 24.0, 6.0: 31.0,
			10.0: 42.0, 16.0: 56.0, 25.0: 73.0, 35.0: 89.0,
			50.0: 108.0, 70.0: 136.0, 95.0: 164.0, 120.0: 188.0,
			150.0: 216.0, 185.0: 245.0, 240.0: 286.0,
		},
		AluminumDerate:         0.78,
		MaxDropTerminalPct:     3.0,
		MaxDropDistributionPct: 5.0,
	}
}

// Report is the structured result of a sizing check. The calculator never
// fails on valid numeric input; non-compliance shows up here, with one
// independent recommendation per violated constraint.
type Report struct {
	VoltageDropV       float64  `json:"voltage_drop_v"`
	VoltageDropPercent float64  `json:"voltage_drop_percent"`
	MaxAllowedPercent  float64  `json:"max_allowed_percent"`
	IsVoltageDropOK    bool     `json:"is_voltage_drop_ok"`
	CurrentCapacityA   float64  `json:"current_capacity_a"`
	IsCurrentOK        bool     `json:"is_current_capacity_ok"`
	ResistanceOhm      float64  `json:"resistance_ohm"`
	PowerLossW         float64  `json:"power_loss_w"`
	IsCompliant        bool     `json:"is_compliant"`
	Recommendations    []string `json:"recommendations"`
}

func (p Params) resistivity(conductor string) float64 {
	if rho, ok := p.Resistivity[conductor]; ok {
		return rho
	}
	return p.Resistivity[Copper]
}

// sections returns the standard sections of the ampacity table, ascending.
func (p Params) sections() []float64 {
	out := make([]float64, 0, len(p.AmpacityCopper))
	for s := range p.AmpacityCopper {
		out = append(out, s)
	}
	sort.Float64s(out)
	return out
}

// maxSection is the recommendation fallback when no table entry suffices.
func (p Params) maxSection() float64 {
	sections := p.sections()
	if len(sections) == 0 {
		return 0
	}
	return sections[len(sections)-1]
}

// VoltageDrop returns the round-trip voltage drop in volts.
// sectionMM2 must be positive; callers reject zero before invoking.
func (p Params) VoltageDrop(currentA, lengthM, sectionMM2 float64, conductor string) float64 {
	return 2 * p.resistivity(conductor) * lengthM * currentA / sectionMM2
}

// Resistance returns the round-trip conductor resistance in ohms.
func (p Params) Resistance(lengthM, sectionMM2 float64, conductor string) float64 {
	return 2 * p.resistivity(conductor) * lengthM / sectionMM2
}

// CurrentCapacity returns the ampacity for a standard section, 0 for a
// non-standard one (always non-compliant for current). Aluminum derives
// from the copper entry via the derate factor, rounded to one decimal.
func (p Params) CurrentCapacity(sectionMM2 float64, conductor string) float64 {
	capacity, ok := p.AmpacityCopper[sectionMM2]
	if !ok {
		return 0.0
	}
	if conductor == Copper {
		return capacity
	}
	return math.Round(capacity*p.AluminumDerate*10) / 10
}

// RecommendSectionForCurrent returns the smallest standard section whose
// ampacity meets currentA, or the largest table entry when none does.
func (p Params) RecommendSectionForCurrent(currentA float64) float64 {
	for _, section := range p.sections() {
		if p.AmpacityCopper[section] >= currentA {
			return section
		}
	}
	return p.maxSection()
}

// RecommendSectionForDrop returns the smallest standard section keeping
// the voltage drop within maxPercent, from the inverted drop formula
// S ≥ 2×ρ×L×I×100 / (U×max%).
func (p Params) RecommendSectionForDrop(currentA, lengthM, voltageV, maxPercent float64, conductor string) float64 {
	minSection := 2 * p.resistivity(conductor) * lengthM * currentA * 100 / (voltageV * maxPercent)
	for _, section := range p.sections() {
		if section >= minSection {
			return section
		}
	}
	return p.maxSection()
}

// CheckCableSizing runs the full sizing check. The voltage-drop and
// current-capacity constraints are independent; each failure yields its
// own minimal-section recommendation and the two are not reconciled.
func (p Params) CheckCableSizing(currentA, lengthM, sectionMM2, voltageV float64, conductor, circuitClass string) Report {
	dropV := p.VoltageDrop(currentA, lengthM, sectionMM2, conductor)
	dropPct := 0.0
	if voltageV > 0 {
		dropPct = dropV / voltageV * 100
	}

	maxPct := p.MaxDropTerminalPct
	if circuitClass == CircuitDistribution {
		maxPct = p.MaxDropDistributionPct
	}

	capacity := p.CurrentCapacity(sectionMM2, conductor)
	currentOK := currentA <= capacity

	resistance := p.Resistance(lengthM, sectionMM2, conductor)
	powerLoss := resistance * currentA * currentA

	voltageOK := dropPct <= maxPct

	var recommendations []string
	if !currentOK {
		recommended := p.RecommendSectionForCurrent(currentA)
		recommendations = append(recommendations, fmt.Sprintf(
			"Section too small for %gA. Minimum recommended section: %g mm²",
			currentA, recommended))
	}
	if !voltageOK {
		recommended := p.RecommendSectionForDrop(currentA, lengthM, voltageV, maxPct, conductor)
		recommendations = append(recommendations, fmt.Sprintf(
			"Voltage drop of %.1f%% exceeds the IEC limit of %g%%. Recommended section: %g mm²",
			dropPct, maxPct, recommended))
	}

	return Report{
		VoltageDropV:       round(dropV, 3),
		VoltageDropPercent: round(dropPct, 2),
		MaxAllowedPercent:  maxPct,
		IsVoltageDropOK:    voltageOK,
		CurrentCapacityA:   capacity,
		IsCurrentOK:        currentOK,
		ResistanceOhm:      round(resistance, 4),
		PowerLossW:         round(powerLoss, 2),
		IsCompliant:        voltageOK && currentOK,
		Recommendations:    recommendations,
	}
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
