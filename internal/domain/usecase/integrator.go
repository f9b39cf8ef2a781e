package usecase

import "fleetfuel/internal/domain/entity"

// Integrate computes the definite integral of a rate series over elapsed
// seconds using a left Riemann sum: each interval contributes its left
// endpoint's rate, and the final sample bounds the last interval without
// adding one of its own. Zero or one sample integrates to zero.
func Integrate(points []entity.FuelRatePoint) float64 {
	var total float64
	for i := 0; i+1 < len(points); i++ {
		total += points[i].Rate * float64(points[i+1].Timestamp-points[i].Timestamp)
	}
	return total
}

// ElapsedHours is the span of the series in hours, zero for fewer than
// two samples.
func ElapsedHours(points []entity.FuelRatePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	return float64(points[len(points)-1].Timestamp-points[0].Timestamp) / 3600
}

// Mean returns the arithmetic mean, zero for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PerHourToPerSecond pins the model-to-integrator unit conversion in one
// place: the model emits gallons per hour, the integrator multiplies rates
// by elapsed seconds. Keep every conversion going through here.
func PerHourToPerSecond(gph float64) float64 {
	return gph / 3600
}
