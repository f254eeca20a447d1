package doctor

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medibook/medibook/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, authMW echo.MiddlewareFunc) {
	api.GET("/doctors", h.List)
	api.GET("/doctors/:id", h.Get)

	adminOnly := api.Group("", authMW, auth.RequireAdmin())
	adminOnly.POST("/doctors", h.Create)
	adminOnly.PUT("/doctors/:id", h.Update)
	adminOnly.DELETE("/doctors/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		Keyword:    c.QueryParam("keyword"),
		Department: c.QueryParam("department"),
	}
	doctors, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if doctors == nil {
		doctors = []*Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

type createRequest struct {
	Name               string     `json:"name" validate:"required"`
	Specialization     string     `json:"specialization" validate:"required"`
	Department         string     `json:"department" validate:"required"`
	Qualification      string     `json:"qualification" validate:"required"`
	Experience         int        `json:"experience" validate:"min=0"`
	ConsultationFee    float64    `json:"consultationFee" validate:"min=0"`
	ProfilePhoto       string     `json:"profilePhoto"`
	AvailableDays      []string   `json:"availableDays" validate:"required,min=1"`
	AvailableTimeSlots []TimeSlot `json:"availableTimeSlots" validate:"required,min=1,dive"`
	Email              string     `json:"email" validate:"required,email"`
	Phone              string     `json:"phone" validate:"required"`
	Bio                string     `json:"bio"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d := &Doctor{
		Name:               req.Name,
		Specialization:     req.Specialization,
		Department:         req.Department,
		Qualification:      req.Qualification,
		Experience:         req.Experience,
		ConsultationFee:    req.ConsultationFee,
		ProfilePhoto:       req.ProfilePhoto,
		AvailableDays:      req.AvailableDays,
		AvailableTimeSlots: req.AvailableTimeSlots,
		Email:              req.Email,
		Phone:              req.Phone,
		Bio:                req.Bio,
		IsActive:           true,
	}
	err := h.svc.Create(c.Request().Context(), d)
	if errors.Is(err, ErrDuplicateEmail) {
		return echo.NewHTTPError(http.StatusBadRequest, "Doctor already exists with this email")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

type updateRequest struct {
	Name               *string    `json:"name"`
	Specialization     *string    `json:"specialization"`
	Department         *string    `json:"department"`
	Qualification      *string    `json:"qualification"`
	Experience         *int       `json:"experience"`
	ConsultationFee    *float64   `json:"consultationFee"`
	ProfilePhoto       *string    `json:"profilePhoto"`
	AvailableDays      []string   `json:"availableDays"`
	AvailableTimeSlots []TimeSlot `json:"availableTimeSlots"`
	Email              *string    `json:"email" validate:"omitempty,email"`
	Phone              *string    `json:"phone"`
	Bio                *string    `json:"bio"`
	IsActive           *bool      `json:"isActive"`
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}

	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d, err := h.svc.Update(c.Request().Context(), id, UpdateInput{
		Name:               req.Name,
		Specialization:     req.Specialization,
		Department:         req.Department,
		Qualification:      req.Qualification,
		Experience:         req.Experience,
		ConsultationFee:    req.ConsultationFee,
		ProfilePhoto:       req.ProfilePhoto,
		AvailableDays:      req.AvailableDays,
		AvailableTimeSlots: req.AvailableTimeSlots,
		Email:              req.Email,
		Phone:              req.Phone,
		Bio:                req.Bio,
		IsActive:           req.IsActive,
	})
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	case errors.Is(err, ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "Doctor already exists with this email")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	err = h.svc.Delete(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Doctor removed"})
}
