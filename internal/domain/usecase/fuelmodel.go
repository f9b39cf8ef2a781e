package usecase

import (
	"math"

	"fleetfuel/internal/domain/entity"
)

// engineConstant relates torque (lb-ft) and rpm to horsepower.
const engineConstant = 5252.0

// FuelParams are the fixed, externally supplied coefficients of the
// consumption model. Production callers pass explicit values; the defaults
// exist for demonstration only.
type FuelParams struct {
	Alpha           float64 // idle consumption floor, gallons per hour
	MassKG          float64
	GearRatio       float64
	MaxPower        float64
	EfficiencyCoeff float64
	AccelCoeff      float64
}

// DefaultFuelParams returns demonstration coefficients for a mid-size
// ground-support tractor.
func DefaultFuelParams() FuelParams {
	return FuelParams{
		Alpha:           0.7,
		MassKG:          4500,
		GearRatio:       3.55,
		MaxPower:        240,
		EfficiencyCoeff: 0.0045,
		AccelCoeff:      0.015,
	}
}

// ModelRow is one aligned, imputed timeline row fed to the model.
type ModelRow struct {
	Timestamp int64
	Gear      float64
	RPM       float64
	Speed     float64
}

// ComputeRates maps each row to a consumption rate in gallons per hour,
// one output per input row. Row 0 has no predecessor: its deltas are zero
// and it lands on the idle floor. Negative rpm deltas clamp to zero (the
// model produces no negative torque), power is capped at MaxPower, and any
// non-finite intermediate (zero elapsed time between rows, overflow) is
// replaced by the floor rather than propagated.
func ComputeRates(rows []ModelRow, p FuelParams) []float64 {
	rates := make([]float64, len(rows))
	for i, row := range rows {
		var torqueDelta, accel float64
		if i > 0 {
			prev := rows[i-1]
			torqueDelta = row.RPM - prev.RPM
			if torqueDelta < 0 {
				torqueDelta = 0
			}
			accel = (prev.Speed - row.Speed) / float64(prev.Timestamp-row.Timestamp)
		}

		torque := torqueDelta * row.Gear * p.GearRatio
		power := torque * row.RPM / engineConstant
		if power > p.MaxPower {
			power = p.MaxPower
		}

		rate := p.Alpha +
			p.EfficiencyCoeff*power +
			p.AccelCoeff*accel*p.MassKG/1000*row.Speed
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < p.Alpha {
			rate = p.Alpha
		}
		rates[i] = rate
	}
	return rates
}

// ModelRowsFromTable projects a filled table onto the model's input schema.
// A cell still absent after imputation (variable missing entirely, or before
// its first observation) reads as zero; the model never invents a reading.
func ModelRowsFromTable(table *entity.FilledTable) []ModelRow {
	rows := make([]ModelRow, len(table.Timestamps))
	for i, ts := range table.Timestamps {
		gear, _ := table.Value(entity.VarGear, ts)
		rpm, _ := table.Value(entity.VarRPM, ts)
		speed, _ := table.Value(entity.VarSpeed, ts)
		rows[i] = ModelRow{Timestamp: ts, Gear: gear, RPM: rpm, Speed: speed}
	}
	return rows
}
