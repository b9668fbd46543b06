package prescription

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smartclinic/smartclinic/internal/platform/auth"
	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(api *echo.Group, gate *auth.Gate) {
	doctor := auth.Require(gate, auth.RoleDoctor)
	api.POST("/appointments/:id/prescription", h.Write, doctor)

	reader := auth.Require(gate, auth.RoleDoctor, auth.RolePatient)
	api.GET("/appointments/:id/prescription", h.Get, reader)
}

type writeRequest struct {
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Notes      string `json:"notes"`
}

func (h *Handler) Write(c echo.Context) error {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req writeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doctorID := auth.SubjectFromContext(c.Request().Context())
	p := &Prescription{
		AppointmentID: apptID,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		Notes:         req.Notes,
	}
	if err := h.svc.Write(c.Request().Context(), p, doctorID); err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	subject := auth.SubjectFromContext(c.Request().Context())
	p, err := h.svc.ByAppointment(c.Request().Context(), apptID, subject)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}
