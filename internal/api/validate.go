package api

import "gainz_journal/internal/domain"

// Allowed enum values, checked before any persistence call

var validUnits = map[string]struct{}{
	domain.UnitKG:  {},
	domain.UnitLBS: {},
}

var validWeightTypes = map[string]struct{}{
	domain.WeightTypeTotal:   {},
	domain.WeightTypePerSide: {},
}

var validDays = map[string]struct{}{
	"SUNDAY":    {},
	"MONDAY":    {},
	"TUESDAY":   {},
	"WEDNESDAY": {},
	"THURSDAY":  {},
	"FRIDAY":    {},
	"SATURDAY":  {},
}

// validateUnit returns an error message for an unknown weight unit
func validateUnit(unit string) string {
	if _, ok := validUnits[unit]; !ok {
		return "Invalid weight unit. Must be either KG or LBS"
	}
	return ""
}

// validateWeightType returns an error message for an unknown weight type
func validateWeightType(weightType string) string {
	if _, ok := validWeightTypes[weightType]; !ok {
		return "Invalid weight type. Must be either TOTAL or PER_SIDE"
	}
	return ""
}

// validateDay returns an error message for an unknown weekday token
func validateDay(day string) string {
	if _, ok := validDays[day]; !ok {
		return "Invalid day. Must be one of SUNDAY through SATURDAY"
	}
	return ""
}

// validateSetValues checks the numeric and enum constraints shared by
// set create, set update and nested set creation
func validateSetValues(reps int, weight float64, unit, weightType string) string {
	if reps < 1 {
		return "Reps must be a positive number"
	}
	if weight < 0 {
		return "Weight must be a non-negative number"
	}
	if msg := validateUnit(unit); msg != "" {
		return msg
	}
	if msg := validateWeightType(weightType); msg != "" {
		return msg
	}
	return ""
}
