package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleetfuel/internal/domain/usecase"
)

func TestComputeRatesFirstRowIdles(t *testing.T) {
	p := usecase.DefaultFuelParams()
	rates := usecase.ComputeRates([]usecase.ModelRow{
		{Timestamp: 0, Gear: 2, RPM: 1000, Speed: 30},
	}, p)
	require.Len(t, rates, 1)
	require.Equal(t, p.Alpha, rates[0])
}

func TestComputeRatesAcceleratingRows(t *testing.T) {
	p := usecase.DefaultFuelParams()
	rates := usecase.ComputeRates([]usecase.ModelRow{
		{Timestamp: 0, Gear: 2, RPM: 1000, Speed: 30},
		{Timestamp: 10, Gear: 2, RPM: 1500, Speed: 32},
	}, p)
	require.Len(t, rates, 2)
	require.Equal(t, 0.7, rates[0])

	// Row 1: torque delta 500, torque 500*2*3.55 = 3550, raw power
	// 3550*1500/5252 ≈ 1014 capped at 240, accel (32-30)/10 = 0.2.
	want := p.Alpha + p.EfficiencyCoeff*p.MaxPower + p.AccelCoeff*0.2*p.MassKG/1000*32
	require.InDelta(t, want, rates[1], 1e-12)
	require.GreaterOrEqual(t, rates[1], p.Alpha)
}

func TestComputeRatesNegativeTorqueClamps(t *testing.T) {
	p := usecase.DefaultFuelParams()
	// Falling rpm at constant speed: torque clamps to zero, no accel term,
	// so the rate sits exactly on the idle floor.
	rates := usecase.ComputeRates([]usecase.ModelRow{
		{Timestamp: 0, Gear: 3, RPM: 2000, Speed: 25},
		{Timestamp: 10, Gear: 3, RPM: 1200, Speed: 25},
	}, p)
	require.Equal(t, p.Alpha, rates[1])
}

func TestComputeRatesPowerCeiling(t *testing.T) {
	p := usecase.DefaultFuelParams()
	// Huge rpm jump at constant speed: power saturates at MaxPower.
	rates := usecase.ComputeRates([]usecase.ModelRow{
		{Timestamp: 0, Gear: 4, RPM: 500, Speed: 10},
		{Timestamp: 10, Gear: 4, RPM: 6000, Speed: 10},
	}, p)
	want := p.Alpha + p.EfficiencyCoeff*p.MaxPower
	require.InDelta(t, want, rates[1], 1e-12)
}

func TestComputeRatesFloorOnDeceleration(t *testing.T) {
	p := usecase.DefaultFuelParams()
	// Hard braking drives the raw formula below alpha; floor-clamp wins.
	rates := usecase.ComputeRates([]usecase.ModelRow{
		{Timestamp: 0, Gear: 2, RPM: 1500, Speed: 40},
		{Timestamp: 5, Gear: 2, RPM: 1500, Speed: 5},
	}, p)
	require.Equal(t, p.Alpha, rates[1])
}

func TestComputeRatesNonFiniteFallsBackToAlpha(t *testing.T) {
	p := usecase.DefaultFuelParams()
	// Zero elapsed time between rows divides by zero; the model recovers
	// with the floor instead of propagating NaN.
	rates := usecase.ComputeRates([]usecase.ModelRow{
		{Timestamp: 10, Gear: 2, RPM: 1000, Speed: 30},
		{Timestamp: 10, Gear: 2, RPM: 1000, Speed: 35},
	}, p)
	require.Equal(t, p.Alpha, rates[1])
}

func TestComputeRatesFloorHoldsEverywhere(t *testing.T) {
	p := usecase.DefaultFuelParams()
	rows := []usecase.ModelRow{
		{Timestamp: 0, Gear: 1, RPM: 900, Speed: 0},
		{Timestamp: 7, Gear: 2, RPM: 1400, Speed: 12},
		{Timestamp: 9, Gear: 2, RPM: 1100, Speed: 18},
		{Timestamp: 30, Gear: 3, RPM: 2500, Speed: 26},
		{Timestamp: 31, Gear: 3, RPM: 2500, Speed: 2},
	}
	for i, rate := range usecase.ComputeRates(rows, p) {
		require.GreaterOrEqual(t, rate, p.Alpha, "row %d", i)
	}
}
