package vitals

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const notRecorded = "Not recorded"

const reportDisclaimer = "This document is a system-generated clinical aid, not a diagnostic record."

// ReportFilename is the attachment name offered to the client.
func ReportFilename(patientID string) string {
	return patientID + "_vitals_report.pdf"
}

// Renderer turns a stored record into a single-page A4 PDF. Rendering is
// deterministic: the same record yields byte-identical output under a fixed
// clock, the generation timestamp being the only time-dependent content.
type Renderer struct {
	Title string
	Clock func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{
		Title: "Patient Vitals Report",
		Clock: time.Now,
	}
}

// Render produces the PDF bytes for rec. The record must exist; existence
// checks belong to the caller.
func (r *Renderer) Render(rec *VitalsRecord) ([]byte, error) {
	now := r.Clock().UTC()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetTitle(r.Title, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, reportDisclaimer, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Header block
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.Title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+now.Format(time.RFC3339), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Patient ID: "+rec.PatientID, "", 1, "L", false, 0, "")
	name := "N/A"
	if rec.PatientName != nil {
		name = *rec.PatientName
	}
	pdf.CellFormat(0, 6, tr("Patient name: "+name), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Vitals table: one row per tracked vital, absent values marked rather
	// than skipped so the report shape never varies with the input.
	rows := []struct {
		label string
		value string
	}{
		{"Heart rate (bpm)", formatVitalInt(rec.HeartRate)},
		{"Blood pressure (mmHg)", formatBloodPressure(rec.BloodPressure)},
		{"Respiratory rate (breaths/min)", formatVitalInt(rec.RespiratoryRate)},
		{tr("Temperature (°C)"), formatVitalFloat(rec.TemperatureC)},
		{"Oxygen saturation (%)", formatVitalInt(rec.OxygenSaturation)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(75, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, row.value, "1", 1, "L", false, 0, "")
	}

	// Notes section, omitted entirely when no notes were recorded.
	if rec.Notes != nil {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(*rec.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render vitals report: %w", err)
	}
	return buf.Bytes(), nil
}

func formatVitalInt(v *int) string {
	if v == nil {
		return notRecorded
	}
	return strconv.Itoa(*v)
}

func formatVitalFloat(v *float64) string {
	if v == nil {
		return notRecorded
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatBloodPressure renders "120/80" when both sides are present, and
// marks the missing side otherwise.
func formatBloodPressure(bp *BloodPressure) string {
	if bp == nil {
		return notRecorded
	}
	if bp.Systolic != nil && bp.Diastolic != nil {
		return fmt.Sprintf("%d/%d", *bp.Systolic, *bp.Diastolic)
	}
	return formatVitalInt(bp.Systolic) + " / " + formatVitalInt(bp.Diastolic)
}
