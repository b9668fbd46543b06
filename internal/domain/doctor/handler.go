package doctor

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smartclinic/smartclinic/internal/platform/auth"
	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
	"github.com/smartclinic/smartclinic/pkg/pagination"
	"github.com/smartclinic/smartclinic/pkg/timeslot"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(api *echo.Group, gate *auth.Gate) {
	api.POST("/doctor/login", h.Login)

	anyRole := auth.Require(gate, auth.RoleAdmin, auth.RoleDoctor, auth.RolePatient)
	api.GET("/doctors", h.List, anyRole)
	api.GET("/doctors/:id", h.Get, anyRole)
	api.GET("/doctors/:id/availability", h.Availability, anyRole)

	admin := auth.Require(gate, auth.RoleAdmin)
	api.POST("/doctors", h.Create, admin)
	api.PUT("/doctors/:id", h.Update, admin)
	api.DELETE("/doctors/:id", h.Delete, admin)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) List(c echo.Context) error {
	crit := Criteria{
		Name:      c.QueryParam("name"),
		Specialty: c.QueryParam("specialty"),
		TimeOfDay: c.QueryParam("time"),
	}
	doctors, err := h.svc.Filter(c.Request().Context(), crit)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(doctors))
	return c.JSON(http.StatusOK, pagination.NewResponse(doctors[lo:hi], len(doctors), pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Availability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	date, err := timeslot.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	free, err := h.svc.FreeSlotsFor(c.Request().Context(), id, date)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"doctor_id":       id,
		"date":            timeslot.FormatDate(date),
		"available_times": free,
	})
}

type createRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Password       string   `json:"password"`
	Specialty      string   `json:"specialty"`
	AvailableTimes []string `json:"available_times"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d := &Doctor{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialty:      req.Specialty,
		AvailableTimes: req.AvailableTimes,
	}
	if err := h.svc.Register(c.Request().Context(), d, req.Password); err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = id
	if err := h.svc.Update(c.Request().Context(), &d); err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
