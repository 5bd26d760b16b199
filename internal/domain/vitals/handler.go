package vitals

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/vitals", h.SubmitVitals)
	e.GET("/vitals/:patient_id", h.GetVitals)
	e.GET("/vitals/:patient_id/pdf", h.GetVitalsPDF)
}

func (h *Handler) SubmitVitals(c echo.Context) error {
	var raw map[string]interface{}
	if err := c.Bind(&raw); err != nil {
		return detail(c, http.StatusBadRequest, "request body must be a JSON object")
	}

	rec, err := h.svc.Intake(c.Request().Context(), raw)
	switch {
	case errors.Is(err, ErrMissingPatientID):
		return detail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrStoreUnavailable):
		return detail(c, http.StatusServiceUnavailable, "vitals store unavailable")
	case err != nil:
		return detail(c, http.StatusInternalServerError, "failed to save vitals")
	}

	return c.JSON(http.StatusOK, map[string]string{"patient_id": rec.PatientID})
}

func (h *Handler) GetVitals(c echo.Context) error {
	rec, err := h.svc.Get(c.Request().Context(), c.Param("patient_id"))
	switch {
	case errors.Is(err, ErrNotFound):
		return detail(c, http.StatusNotFound, "no vitals for that patient")
	case errors.Is(err, ErrStoreUnavailable):
		return detail(c, http.StatusServiceUnavailable, "vitals store unavailable")
	case err != nil:
		return detail(c, http.StatusInternalServerError, "failed to load vitals")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetVitalsPDF(c echo.Context) error {
	patientID := c.Param("patient_id")
	pdf, err := h.svc.Report(c.Request().Context(), patientID)
	switch {
	case errors.Is(err, ErrNotFound):
		return detail(c, http.StatusNotFound, "no vitals to make PDF")
	case errors.Is(err, ErrStoreUnavailable):
		return detail(c, http.StatusServiceUnavailable, "vitals store unavailable")
	case err != nil:
		return detail(c, http.StatusInternalServerError, "failed to render report")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", ReportFilename(patientID)))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// detail writes the error body shape the entry form expects.
func detail(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"detail": msg})
}
