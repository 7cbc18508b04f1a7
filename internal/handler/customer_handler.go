package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /customersのHTTP
type CustomerHandler struct {
	uc *usecase.CustomerUsecase
}

// DI
func NewCustomerHandler(uc *usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

type UpdateCustomerRequest struct {
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date"` // YYYY-MM-DD
	Membership string `json:"membership"`
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/customers")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/me", h.me)
	g.PUT("/me", h.updateMe)

	a := e.Group("/customers")
	a.Use(middleware.AuthJWT(cfg))
	a.Use(middleware.AdminRoleGuard())
	a.GET("/:id", h.detail)
}

func (h *CustomerHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMe(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) updateMe(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.UpdateCustomerInput{
		Phone:      req.Phone,
		Membership: req.Membership,
	}
	if req.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid birth_date"})
		}
		in.BirthDate = &bd
	}

	out, err := h.uc.UpdateMe(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
