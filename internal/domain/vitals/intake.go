package vitals

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrMissingPatientID is the only hard failure at the normalization stage.
var ErrMissingPatientID = errors.New("patient_id is required")

// Normalize turns a raw client submission into a storage-ready record. It is
// a pure transform: no timestamps, no side effects, and normalizing the same
// input twice yields identical output.
//
// Field rules:
//   - patient_id: trimmed; empty after trimming fails with ErrMissingPatientID.
//   - string fields: trimmed; omitted when empty.
//   - numeric fields: parsed from a JSON number or a string; blank,
//     unparseable, or non-finite input is treated as "not provided" rather
//     than rejected (permissive form entry). A parsed value of exactly zero
//     is likewise treated as "not provided"; see the notes on parseVitalInt.
//   - blood pressure: built from flat systolic/diastolic keys or a nested
//     blood_pressure object (flat keys win); the composite is omitted when
//     both sides are absent.
func Normalize(raw map[string]interface{}) (*VitalsRecord, error) {
	patientID := strings.TrimSpace(rawString(raw["patient_id"]))
	if patientID == "" {
		return nil, ErrMissingPatientID
	}

	rec := &VitalsRecord{PatientID: patientID}

	if name := strings.TrimSpace(rawString(raw["patient_name"])); name != "" {
		rec.PatientName = &name
	}
	if notes := strings.TrimSpace(rawString(raw["notes"])); notes != "" {
		rec.Notes = &notes
	}

	rec.HeartRate = parseVitalInt(raw["heart_rate"])
	rec.RespiratoryRate = parseVitalInt(raw["respiratory_rate"])
	rec.OxygenSaturation = parseVitalInt(raw["oxygen_saturation"])
	rec.TemperatureC = parseVitalFloat(raw["temperature_c"])

	bp := BloodPressure{}
	if nested, ok := raw["blood_pressure"].(map[string]interface{}); ok {
		bp.Systolic = parseVitalInt(nested["systolic"])
		bp.Diastolic = parseVitalInt(nested["diastolic"])
	}
	if v := parseVitalInt(raw["systolic"]); v != nil {
		bp.Systolic = v
	}
	if v := parseVitalInt(raw["diastolic"]); v != nil {
		bp.Diastolic = v
	}
	if bp.Systolic != nil || bp.Diastolic != nil {
		rec.BloodPressure = &bp
	}

	return rec, nil
}

// rawString returns v as a string when it is one, and "" otherwise. Numeric
// input for a string field counts as "not provided".
func rawString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// parseVitalInt interprets a raw submission value as an integer vital.
// It returns nil for anything that does not resolve to a usable value:
// missing, blank, unparseable, non-integral, or exactly zero. Zero means
// "not provided": the entry form sends blank fields and zeroes
// interchangeably, and a stored 0 would fabricate a reading that was never
// taken.
func parseVitalInt(v interface{}) *int {
	var n int
	switch value := v.(type) {
	case float64: // JSON numbers decode as float64
		if value != math.Trunc(value) || math.IsInf(value, 0) || math.IsNaN(value) {
			return nil
		}
		n = int(value)
	case int:
		n = value
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	if n == 0 {
		return nil
	}
	return &n
}

// parseVitalFloat is parseVitalInt for the decimal temperature field.
func parseVitalFloat(v interface{}) *float64 {
	var f float64
	switch value := v.(type) {
	case float64:
		f = value
	case int:
		f = float64(value)
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f == 0 {
		return nil
	}
	return &f
}
