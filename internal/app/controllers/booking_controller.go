package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/app/services"
	"github.com/educonnect/educonnect/internal/middleware"
)

// BookingController handles booking operations
type BookingController struct {
	bookingService services.BookingService
	logger         zerolog.Logger
}

// NewBookingController creates a new BookingController
func NewBookingController(bookingService services.BookingService, logger zerolog.Logger) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		logger:         logger,
	}
}

// CreateBooking books the authenticated student into a session
// @Summary Create booking
// @Description Books one seat of a session for the authenticated student
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookingRequest true "Session to book"
// @Success 201 {object} dto.APIResponse{data=models.Booking} "Booking created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session full or already booked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create booking payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	booking, err := c.bookingService.CreateBooking(ctx.Request.Context(), userID, req.SessionID)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("studentID", userID).
			Int64("sessionID", req.SessionID).
			Msg("Booking failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(booking))
}

// ListMyBookings returns the authenticated student's active bookings
// @Summary List own bookings
// @Description Lists the student's active bookings with their sessions, soonest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Booking} "Bookings"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /bookings/my [get]
func (c *BookingController) ListMyBookings(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	bookings, err := c.bookingService.ListBookingsByStudent(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(bookings))
}

// CancelBooking cancels an owned booking and frees its seat
// @Summary Cancel booking
// @Description Cancels a booking owned by the authenticated student. Cancelling twice is harmless.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} dto.APIResponse{data=models.Booking} "Cancelled booking"
// @Failure 403 {object} dto.ErrorResponse "Not the booking owner"
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /bookings/{id}/cancel [put]
func (c *BookingController) CancelBooking(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	bookingID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	booking, err := c.bookingService.CancelBooking(ctx.Request.Context(), bookingID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(booking))
}
