package domain

const kgToLbs = 2.2046226218

// ConvertWeight converts a weight value between kg and lbs.
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to WeightUnit) float64 {
	if from == to {
		return v
	}
	if from == WeightUnitKg && to == WeightUnitLbs {
		return v * kgToLbs
	}
	if from == WeightUnitLbs && to == WeightUnitKg {
		return v / kgToLbs
	}
	return v
}
