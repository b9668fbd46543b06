package appointment

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smartclinic/smartclinic/internal/platform/auth"
	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
	"github.com/smartclinic/smartclinic/pkg/timeslot"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(api *echo.Group, gate *auth.Gate) {
	patient := auth.Require(gate, auth.RolePatient)
	api.POST("/appointments", h.Book, patient)
	api.GET("/appointments", h.ListMine, patient)
	api.GET("/appointments/:id", h.Get, patient)
	api.PUT("/appointments/:id", h.Reschedule, patient)
	api.DELETE("/appointments/:id", h.Cancel, patient)

	doctor := auth.Require(gate, auth.RoleDoctor)
	api.GET("/doctor/appointments", h.ListForDoctor, doctor)
	api.POST("/doctor/appointments/:id/complete", h.Complete, doctor)
	api.POST("/doctor/appointments/:id/no-show", h.MarkNoShow, doctor)
}

type bookRequest struct {
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func (h *Handler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
	}
	date, err := timeslot.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}

	patientID := auth.SubjectFromContext(c.Request().Context())
	a, err := h.svc.Book(c.Request().Context(), BookingRequest{
		DoctorID: doctorID,
		Date:     date,
		Time:     req.Time,
	}, patientID)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListMine(c echo.Context) error {
	patientID := auth.SubjectFromContext(c.Request().Context())
	crit := Criteria{
		Condition:  c.QueryParam("condition"),
		DoctorName: c.QueryParam("doctor"),
	}
	appts, err := h.svc.ListForPatient(c.Request().Context(), patientID, crit)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	patientID := auth.SubjectFromContext(c.Request().Context())
	a, err := h.svc.Get(c.Request().Context(), id, patientID)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, a)
}

type rescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (h *Handler) Reschedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req rescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := timeslot.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}

	patientID := auth.SubjectFromContext(c.Request().Context())
	a, err := h.svc.Reschedule(c.Request().Context(), id, date, req.Time, patientID)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	patientID := auth.SubjectFromContext(c.Request().Context())
	if err := h.svc.Cancel(c.Request().Context(), id, patientID); err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListForDoctor(c echo.Context) error {
	date, err := timeslot.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	doctorID := auth.SubjectFromContext(c.Request().Context())
	appts, err := h.svc.ListForDoctor(c.Request().Context(), doctorID, date, c.QueryParam("patient"))
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Complete(c echo.Context) error {
	return h.closeOut(c, h.svc.Complete)
}

func (h *Handler) MarkNoShow(c echo.Context) error {
	return h.closeOut(c, h.svc.MarkNoShow)
}

func (h *Handler) closeOut(c echo.Context, op func(ctx context.Context, apptID, doctorID uuid.UUID) error) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	doctorID := auth.SubjectFromContext(c.Request().Context())
	if err := op(c.Request().Context(), id, doctorID); err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
