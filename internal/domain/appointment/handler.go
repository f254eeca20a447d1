package appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medibook/medibook/internal/domain/doctor"
	"github.com/medibook/medibook/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, authMW echo.MiddlewareFunc) {
	api.POST("/appointments/book", h.Book, authMW)
	api.GET("/appointments/available-slots", h.AvailableSlots)
	api.GET("/appointments/my-appointments", h.MyAppointments, authMW)
	api.GET("/appointments/all", h.ListAll, authMW, auth.RequireAdmin())
	api.GET("/appointments/:id", h.Get, authMW)
	api.PUT("/appointments/:id/status", h.UpdateStatus, authMW)
}

type bookRequest struct {
	DoctorID        uuid.UUID `json:"doctorId" validate:"required"`
	AppointmentDate string    `json:"appointmentDate" validate:"required"`
	TimeSlot        string    `json:"timeSlot" validate:"required"`
	ReasonForVisit  string    `json:"reasonForVisit"`
}

func (h *Handler) Book(c echo.Context) error {
	caller := auth.CallerFromContext(c.Request().Context())
	if caller == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.svc.Book(c.Request().Context(), caller.ID, BookInput{
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		TimeSlot:        req.TimeSlot,
		ReasonForVisit:  req.ReasonForVisit,
	})
	switch {
	case errors.Is(err, doctor.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	case errors.Is(err, ErrSlotTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Time slot already booked")
	case errors.Is(err, ErrDuplicateNumber):
		return echo.NewHTTPError(http.StatusBadRequest, "Appointment number conflict, please retry")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) AvailableSlots(c echo.Context) error {
	doctorID := c.QueryParam("doctorId")
	date := c.QueryParam("date")
	if doctorID == "" || date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Doctor ID and Date are required")
	}

	id, err := uuid.Parse(doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}

	slots, err := h.svc.AvailableSlots(c.Request().Context(), id, date)
	if errors.Is(err, doctor.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) MyAppointments(c echo.Context) error {
	caller := auth.CallerFromContext(c.Request().Context())
	if caller == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}

	items, err := h.svc.MyAppointments(c.Request().Context(), caller.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Detail{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}

	det, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, det)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid appointment status")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	case errors.Is(err, ErrSlotTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Time slot already booked")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAll(c echo.Context) error {
	items, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Detail{}
	}
	return c.JSON(http.StatusOK, items)
}
