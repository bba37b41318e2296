package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
)

type SessionStoreMock struct{ mock.Mock }

func (m *SessionStoreMock) Create(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}
func (m *SessionStoreMock) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}
func (m *SessionStoreMock) GetByVolunteer(ctx context.Context, volunteerID int64) ([]*models.Session, error) {
	args := m.Called(ctx, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}
func (m *SessionStoreMock) GetAvailable(ctx context.Context, studentID *int64, now time.Time) ([]*models.Session, error) {
	args := m.Called(ctx, studentID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}
func (m *SessionStoreMock) Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.Session, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}
func (m *SessionStoreMock) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *SessionStoreMock) GetVolunteerStats(ctx context.Context, volunteerID int64, now time.Time) (*models.VolunteerStats, error) {
	args := m.Called(ctx, volunteerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VolunteerStats), args.Error(1)
}

type BookingStoreMock struct{ mock.Mock }

func (m *BookingStoreMock) Create(ctx context.Context, studentID, sessionID int64) (*models.Booking, error) {
	args := m.Called(ctx, studentID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *BookingStoreMock) Cancel(ctx context.Context, bookingID int64) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *BookingStoreMock) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *BookingStoreMock) GetByStudent(ctx context.Context, studentID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *BookingStoreMock) GetBySession(ctx context.Context, sessionID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func newTestSession(id, volunteerID int64, maxStudents, currentStudents int) *models.Session {
	return &models.Session{
		ID:              id,
		Title:           "Intro to Algebra",
		VolunteerID:     volunteerID,
		MaxStudents:     maxStudents,
		CurrentStudents: currentStudents,
		Date:            time.Now().Add(24 * time.Hour),
		IsActive:        true,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free seat", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		sessions.On("GetByID", ctx, int64(10)).Return(newTestSession(10, 2, 3, 1), nil)
		bookings.On("Create", ctx, int64(5), int64(10)).Return(&models.Booking{
			ID:        1,
			StudentID: 5,
			SessionID: 10,
			Status:    models.BookingActive,
		}, nil)

		booking, err := svc.CreateBooking(ctx, 5, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), booking.SessionID)
		assert.Equal(t, models.BookingActive, booking.Status)
		bookings.AssertExpectations(t)
	})

	t.Run("rejects a full session", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		// one-seat session with its seat already taken
		sessions.On("GetByID", ctx, int64(10)).Return(newTestSession(10, 2, 1, 1), nil)

		_, err := svc.CreateBooking(ctx, 5, 10)
		assert.ErrorIs(t, err, apperrors.ErrSessionFull)
		bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an inactive session as not found", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		session := newTestSession(10, 2, 3, 0)
		session.IsActive = false
		sessions.On("GetByID", ctx, int64(10)).Return(session, nil)

		_, err := svc.CreateBooking(ctx, 5, 10)
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("propagates a duplicate booking from the store", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		sessions.On("GetByID", ctx, int64(10)).Return(newTestSession(10, 2, 3, 1), nil)
		bookings.On("Create", ctx, int64(5), int64(10)).Return(nil, apperrors.ErrAlreadyBooked)

		_, err := svc.CreateBooking(ctx, 5, 10)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)
	})

	t.Run("propagates a lost race from the store", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		// the precheck sees a free seat but the transaction loses the race
		sessions.On("GetByID", ctx, int64(10)).Return(newTestSession(10, 2, 1, 0), nil)
		bookings.On("Create", ctx, int64(5), int64(10)).Return(nil, apperrors.ErrSessionFull)

		_, err := svc.CreateBooking(ctx, 5, 10)
		assert.ErrorIs(t, err, apperrors.ErrSessionFull)
	})

	t.Run("unknown session", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		sessions.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrSessionNotFound)

		_, err := svc.CreateBooking(ctx, 5, 99)
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("a cancelled seat can be rebooked", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		// one-seat session: student 5 holds the seat, student 6 is turned away
		sessions.On("GetByID", ctx, int64(10)).Return(newTestSession(10, 2, 1, 1), nil).Once()
		_, err := svc.CreateBooking(ctx, 6, 10)
		assert.ErrorIs(t, err, apperrors.ErrSessionFull)

		bookings.On("GetByID", ctx, int64(1)).Return(&models.Booking{
			ID: 1, StudentID: 5, SessionID: 10, Status: models.BookingActive,
		}, nil)
		bookings.On("Cancel", ctx, int64(1)).Return(&models.Booking{
			ID: 1, StudentID: 5, SessionID: 10, Status: models.BookingCancelled,
		}, nil)
		_, err = svc.CancelBooking(ctx, 1, 5)
		require.NoError(t, err)

		// the cancel recomputed the count, so the seat is free again
		sessions.On("GetByID", ctx, int64(10)).Return(newTestSession(10, 2, 1, 0), nil)
		bookings.On("Create", ctx, int64(6), int64(10)).Return(&models.Booking{
			ID: 2, StudentID: 6, SessionID: 10, Status: models.BookingActive,
		}, nil)

		booking, err := svc.CreateBooking(ctx, 6, 10)
		require.NoError(t, err)
		assert.Equal(t, models.BookingActive, booking.Status)
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels an owned booking", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		bookings.On("GetByID", ctx, int64(1)).Return(&models.Booking{
			ID: 1, StudentID: 5, SessionID: 10, Status: models.BookingActive,
		}, nil)
		bookings.On("Cancel", ctx, int64(1)).Return(&models.Booking{
			ID: 1, StudentID: 5, SessionID: 10, Status: models.BookingCancelled,
		}, nil)

		booking, err := svc.CancelBooking(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, booking.Status)
		bookings.AssertExpectations(t)
	})

	t.Run("rejects cancellation by another student", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		bookings.On("GetByID", ctx, int64(1)).Return(&models.Booking{
			ID: 1, StudentID: 5, SessionID: 10, Status: models.BookingActive,
		}, nil)

		_, err := svc.CancelBooking(ctx, 1, 6)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		bookings.On("GetByID", ctx, int64(1)).Return(&models.Booking{
			ID: 1, StudentID: 5, SessionID: 10, Status: models.BookingCancelled,
		}, nil)

		booking, err := svc.CancelBooking(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, booking.Status)
		bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("unknown booking", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		bookings.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrBookingNotFound)

		_, err := svc.CancelBooking(ctx, 99, 5)
		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})
}

func TestBookingService_ListBookingsBySession(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees the bookings", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		sessions.On("GetByID", ctx, int64(10)).Return(newTestSession(10, 2, 3, 2), nil)
		bookings.On("GetBySession", ctx, int64(10)).Return([]*models.Booking{
			{ID: 1, StudentID: 5, SessionID: 10, Status: models.BookingActive},
			{ID: 2, StudentID: 6, SessionID: 10, Status: models.BookingActive},
		}, nil)

		list, err := svc.ListBookingsBySession(ctx, 10, 2)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("other volunteers are rejected", func(t *testing.T) {
		sessions := new(SessionStoreMock)
		bookings := new(BookingStoreMock)
		svc := NewBookingService(bookings, sessions, zerolog.Nop())

		sessions.On("GetByID", ctx, int64(10)).Return(newTestSession(10, 2, 3, 2), nil)

		_, err := svc.ListBookingsBySession(ctx, 10, 7)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		bookings.AssertNotCalled(t, "GetBySession", mock.Anything, mock.Anything)
	})
}

func TestBookingService_ListBookingsByStudent(t *testing.T) {
	ctx := context.Background()
	sessions := new(SessionStoreMock)
	bookings := new(BookingStoreMock)
	svc := NewBookingService(bookings, sessions, zerolog.Nop())

	storeErr := errors.New("connection refused")
	bookings.On("GetByStudent", ctx, int64(5)).Return(nil, storeErr)

	_, err := svc.ListBookingsByStudent(ctx, 5)
	assert.ErrorIs(t, err, storeErr)
}
