package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
)

// BookingStore is the booking persistence contract consumed by BookingService.
// Create and Cancel are transactional on the store side and keep the
// session's current_students derived from the active booking rows.
type BookingStore interface {
	Create(ctx context.Context, studentID, sessionID int64) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID int64) (*models.Booking, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	GetByStudent(ctx context.Context, studentID int64) ([]*models.Booking, error)
	GetBySession(ctx context.Context, sessionID int64) ([]*models.Booking, error)
}

// BookingService defines the interface for booking operations
type BookingService interface {
	CreateBooking(ctx context.Context, studentID, sessionID int64) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, requesterID int64) (*models.Booking, error)
	ListBookingsByStudent(ctx context.Context, studentID int64) ([]*models.Booking, error)
	ListBookingsBySession(ctx context.Context, sessionID, requesterID int64) ([]*models.Booking, error)
}

// bookingServiceImpl implements BookingService
type bookingServiceImpl struct {
	bookingStore BookingStore
	sessionStore SessionStore
	logger       zerolog.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingStore BookingStore, sessionStore SessionStore, logger zerolog.Logger) BookingService {
	return &bookingServiceImpl{
		bookingStore: bookingStore,
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// CreateBooking books a student into a session. The session is re-read here
// for an early capacity answer, the store's transaction re-checks under a
// row lock so two concurrent requests cannot both take the last seat.
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, studentID, sessionID int64) (*models.Booking, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsActive {
		return nil, apperrors.ErrSessionNotFound
	}
	if session.IsFull() {
		return nil, apperrors.ErrSessionFull
	}

	booking, err := s.bookingStore.Create(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("bookingID", booking.ID).
		Int64("studentID", studentID).
		Int64("sessionID", sessionID).
		Msg("Booking created")

	return booking, nil
}

// CancelBooking cancels a booking owned by the requesting student and
// releases its seat. Cancelling an already-cancelled booking is a no-op.
func (s *bookingServiceImpl) CancelBooking(ctx context.Context, bookingID, requesterID int64) (*models.Booking, error) {
	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.StudentID != requesterID {
		return nil, apperrors.NewForbiddenError("Only the booking's student can cancel it")
	}

	if booking.Status == models.BookingCancelled {
		return booking, nil
	}

	cancelled, err := s.bookingStore.Cancel(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error cancelling booking: %w", err)
	}

	s.logger.Info().
		Int64("bookingID", bookingID).
		Int64("sessionID", cancelled.SessionID).
		Msg("Booking cancelled")

	return cancelled, nil
}

// ListBookingsByStudent returns a student's active bookings with their
// sessions, soonest session first
func (s *bookingServiceImpl) ListBookingsByStudent(ctx context.Context, studentID int64) ([]*models.Booking, error) {
	bookings, err := s.bookingStore.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student bookings: %w", err)
	}
	return bookings, nil
}

// ListBookingsBySession returns the bookings of a session owned by the
// requesting volunteer
func (s *bookingServiceImpl) ListBookingsBySession(ctx context.Context, sessionID, requesterID int64) ([]*models.Booking, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.VolunteerID != requesterID {
		return nil, apperrors.NewForbiddenError("Only the owning volunteer can view a session's bookings")
	}

	bookings, err := s.bookingStore.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error listing session bookings: %w", err)
	}
	return bookings, nil
}
