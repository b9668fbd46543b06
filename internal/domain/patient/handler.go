package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/smartclinic/internal/platform/auth"
	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(api *echo.Group, gate *auth.Gate) {
	api.POST("/patient", h.Register)
	api.POST("/patient/login", h.Login)

	self := auth.Require(gate, auth.RolePatient)
	api.GET("/patient/me", h.Me, self)
	api.PUT("/patient/me", h.UpdateMe, self)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := &Patient{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := h.svc.Register(c.Request().Context(), p, req.Password); err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, p)
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

func (h *Handler) Me(c echo.Context) error {
	subject := auth.SubjectFromContext(c.Request().Context())
	p, err := h.svc.Get(c.Request().Context(), subject)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateMe(c echo.Context) error {
	subject := auth.SubjectFromContext(c.Request().Context())
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = subject
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}
