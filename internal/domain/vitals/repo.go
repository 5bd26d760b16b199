package vitals

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record exists for the requested patient id.
	ErrNotFound = errors.New("vitals record not found")

	// ErrStoreUnavailable wraps store-level failures. Callers surface it as a
	// server error; there is no automatic retry.
	ErrStoreUnavailable = errors.New("vitals store unavailable")
)

// Repository is the record store adapter: one document per patient id.
type Repository interface {
	// Save upserts the record under its patient id. The write is an atomic
	// full replace: created_at is stamped on first insert and preserved on
	// overwrite, updated_at is refreshed on every call. Both timestamps are
	// written back onto rec.
	Save(ctx context.Context, rec *VitalsRecord) error

	// FindByID returns the stored record or ErrNotFound.
	FindByID(ctx context.Context, patientID string) (*VitalsRecord, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
