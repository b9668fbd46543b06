package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/admin/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return clinicerr.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
