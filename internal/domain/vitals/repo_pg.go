package vitals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// repoPG stores each record as a JSONB document in the vitals_record table.
// The document carries only the fields that were present in the submission;
// created_at/updated_at live in dedicated columns so the upsert can preserve
// the former and refresh the latter.
type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// vitalsDoc is the JSONB payload: the record minus the store-assigned
// timestamps.
type vitalsDoc struct {
	PatientID        string         `json:"patient_id"`
	PatientName      *string        `json:"patient_name,omitempty"`
	HeartRate        *int           `json:"heart_rate,omitempty"`
	BloodPressure    *BloodPressure `json:"blood_pressure,omitempty"`
	RespiratoryRate  *int           `json:"respiratory_rate,omitempty"`
	TemperatureC     *float64       `json:"temperature_c,omitempty"`
	OxygenSaturation *int           `json:"oxygen_saturation,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
}

func toDoc(rec *VitalsRecord) vitalsDoc {
	return vitalsDoc{
		PatientID:        rec.PatientID,
		PatientName:      rec.PatientName,
		HeartRate:        rec.HeartRate,
		BloodPressure:    rec.BloodPressure,
		RespiratoryRate:  rec.RespiratoryRate,
		TemperatureC:     rec.TemperatureC,
		OxygenSaturation: rec.OxygenSaturation,
		Notes:            rec.Notes,
	}
}

func (d vitalsDoc) toRecord() *VitalsRecord {
	return &VitalsRecord{
		PatientID:        d.PatientID,
		PatientName:      d.PatientName,
		HeartRate:        d.HeartRate,
		BloodPressure:    d.BloodPressure,
		RespiratoryRate:  d.RespiratoryRate,
		TemperatureC:     d.TemperatureC,
		OxygenSaturation: d.OxygenSaturation,
		Notes:            d.Notes,
	}
}

func (r *repoPG) Save(ctx context.Context, rec *VitalsRecord) error {
	doc, err := json.Marshal(toDoc(rec))
	if err != nil {
		return fmt.Errorf("marshal vitals document: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO vitals_record (patient_id, doc)
		VALUES ($1, $2)
		ON CONFLICT (patient_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
		RETURNING created_at, updated_at`,
		rec.PatientID, doc)
	if err := row.Scan(&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return storeError("save vitals record", err)
	}
	return nil
}

func (r *repoPG) FindByID(ctx context.Context, patientID string) (*VitalsRecord, error) {
	var doc []byte
	rec := &VitalsRecord{}
	err := r.pool.QueryRow(ctx, `
		SELECT doc, created_at, updated_at FROM vitals_record WHERE patient_id = $1`,
		patientID).Scan(&doc, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("find vitals record", err)
	}

	var d vitalsDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("unmarshal vitals document: %w", err)
	}
	stored := d.toRecord()
	stored.CreatedAt = rec.CreatedAt
	stored.UpdatedAt = rec.UpdatedAt
	return stored, nil
}

func (r *repoPG) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return storeError("ping store", err)
	}
	return nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
