package vitals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// -- Mock Repository --

type mockRepo struct {
	records   map[string]*VitalsRecord
	saveCalls int
	saveErr   error
	findErr   error
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[string]*VitalsRecord)}
}

func (m *mockRepo) Save(_ context.Context, rec *VitalsRecord) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if prev, ok := m.records[rec.PatientID]; ok {
		rec.CreatedAt = prev.CreatedAt
	}
	stored := *rec
	m.records[rec.PatientID] = &stored
	return nil
}

func (m *mockRepo) FindByID(_ context.Context, patientID string) (*VitalsRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	rec, ok := m.records[patientID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *mockRepo) Ping(_ context.Context) error {
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return newServiceWith(repo), repo
}

func newServiceWith(repo Repository) *Service {
	return NewService(repo, NewRenderer(), zerolog.Nop())
}

// -- Tests --

func TestService_IntakeAndFetch(t *testing.T) {
	svc, _ := newTestService()

	rec, err := svc.Intake(context.Background(), map[string]interface{}{
		"patient_id": "P1",
		"heart_rate": "72",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.PatientID != "P1" {
		t.Errorf("expected patient id P1, got %s", rec.PatientID)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("expected store-assigned timestamps on the saved record")
	}

	stored, err := svc.Get(context.Background(), "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.HeartRate == nil || *stored.HeartRate != 72 {
		t.Errorf("expected stored heart_rate 72, got %v", stored.HeartRate)
	}
}

func TestService_IntakeMissingPatientID_NothingPersisted(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Intake(context.Background(), map[string]interface{}{
		"patient_id": "",
		"heart_rate": "72",
	})
	if !errors.Is(err, ErrMissingPatientID) {
		t.Fatalf("expected ErrMissingPatientID, got %v", err)
	}
	if repo.saveCalls != 0 {
		t.Errorf("expected no save calls, got %d", repo.saveCalls)
	}
	if len(repo.records) != 0 {
		t.Errorf("expected no documents written, got %d", len(repo.records))
	}
}

func TestService_IntakePropagatesStoreError(t *testing.T) {
	svc, repo := newTestService()
	repo.saveErr = ErrStoreUnavailable

	_, err := svc.Intake(context.Background(), map[string]interface{}{"patient_id": "P1"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestService_OverwriteKeepsLatestValue(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Intake(ctx, map[string]interface{}{"patient_id": "P1", "heart_rate": "72"}); err != nil {
		t.Fatalf("first intake: %v", err)
	}
	if _, err := svc.Intake(ctx, map[string]interface{}{"patient_id": "P1", "heart_rate": "95"}); err != nil {
		t.Fatalf("second intake: %v", err)
	}

	rec, err := svc.Get(ctx, "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.HeartRate == nil || *rec.HeartRate != 95 {
		t.Errorf("expected latest heart_rate 95, got %v", rec.HeartRate)
	}
}

func TestService_OverwriteReplacesWholeRecord(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Intake(ctx, map[string]interface{}{
		"patient_id": "P1",
		"heart_rate": "72",
		"notes":      "first visit",
	}); err != nil {
		t.Fatalf("first intake: %v", err)
	}
	if _, err := svc.Intake(ctx, map[string]interface{}{
		"patient_id": "P1",
		"systolic":   "120",
		"diastolic":  "80",
	}); err != nil {
		t.Fatalf("second intake: %v", err)
	}

	rec, err := svc.Get(ctx, "P1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.HeartRate != nil {
		t.Error("expected heart_rate from the first submission to be gone")
	}
	if rec.Notes != nil {
		t.Error("expected notes from the first submission to be gone")
	}
	if rec.BloodPressure == nil {
		t.Error("expected blood_pressure from the latest submission")
	}
}

func TestService_ReportNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Report(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ReportRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Intake(ctx, map[string]interface{}{
		"patient_id": "P2",
		"systolic":   "120",
		"diastolic":  "80",
	}); err != nil {
		t.Fatalf("intake: %v", err)
	}

	pdf, err := svc.Report(ctx, "P2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected non-empty PDF bytes")
	}
	if string(pdf[:5]) != "%PDF-" {
		t.Errorf("expected PDF header, got %q", pdf[:5])
	}
}
