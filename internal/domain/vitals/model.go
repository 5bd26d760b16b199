package vitals

import "time"

// BloodPressure is the systolic/diastolic composite. Either side may be
// absent independently; the composite as a whole is omitted when both are.
type BloodPressure struct {
	Systolic  *int `json:"systolic,omitempty" bson:"systolic,omitempty"`
	Diastolic *int `json:"diastolic,omitempty" bson:"diastolic,omitempty"`
}

// VitalsRecord is one patient's stored vitals document, keyed by patient id.
// A later submission for the same patient id fully replaces the prior record.
// Optional fields are pointers so that "unknown" never serializes as zero.
type VitalsRecord struct {
	PatientID        string         `json:"patient_id" bson:"patient_id"`
	PatientName      *string        `json:"patient_name,omitempty" bson:"patient_name,omitempty"`
	HeartRate        *int           `json:"heart_rate,omitempty" bson:"heart_rate,omitempty"`
	BloodPressure    *BloodPressure `json:"blood_pressure,omitempty" bson:"blood_pressure,omitempty"`
	RespiratoryRate  *int           `json:"respiratory_rate,omitempty" bson:"respiratory_rate,omitempty"`
	TemperatureC     *float64       `json:"temperature_c,omitempty" bson:"temperature_c,omitempty"`
	OxygenSaturation *int           `json:"oxygen_saturation,omitempty" bson:"oxygen_saturation,omitempty"`
	Notes            *string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt        time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" bson:"updated_at"`
}
