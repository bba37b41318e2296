package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
)

func TestBookingRepository_SeatAccounting(t *testing.T) {
	database := setupTestDatabase(t)
	users := NewUserRepository(database.Pool)
	sessions := NewSessionRepository(database.Pool)
	bookings := NewBookingRepository(database)
	ctx := context.Background()

	volunteer := createTestUser(t, users, "volunteer1", models.RoleVolunteer)
	studentA := createTestUser(t, users, "student_a", models.RoleStudent)
	studentB := createTestUser(t, users, "student_b", models.RoleStudent)
	session := createSessionRow(t, sessions, volunteer.ID, 1, time.Now().Add(24*time.Hour))

	// A takes the only seat
	booking, err := bookings.Create(ctx, studentA.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingActive, booking.Status)
	counter, active := seatCounters(t, database, session.ID)
	assert.Equal(t, 1, counter)
	assert.Equal(t, counter, active)

	// B finds the session full, A must not hold two seats
	_, err = bookings.Create(ctx, studentB.ID, session.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionFull)
	_, err = bookings.Create(ctx, studentA.ID, session.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)

	// the failed attempts left nothing behind
	counter, active = seatCounters(t, database, session.ID)
	assert.Equal(t, 1, counter)
	assert.Equal(t, counter, active)

	// cancelling frees the seat in the same transaction
	cancelled, err := bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	counter, active = seatCounters(t, database, session.ID)
	assert.Equal(t, 0, counter)
	assert.Equal(t, counter, active)

	// the freed seat goes to B, the cancelled row does not block anyone
	_, err = bookings.Create(ctx, studentB.ID, session.ID)
	require.NoError(t, err)
	counter, active = seatCounters(t, database, session.ID)
	assert.Equal(t, 1, counter)
	assert.Equal(t, counter, active)

	// A can come back once a seat frees up again, not before
	_, err = bookings.Create(ctx, studentA.ID, session.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionFull)
}

func TestBookingRepository_ConcurrentLastSeat(t *testing.T) {
	database := setupTestDatabase(t)
	users := NewUserRepository(database.Pool)
	sessions := NewSessionRepository(database.Pool)
	bookings := NewBookingRepository(database)
	ctx := context.Background()

	volunteer := createTestUser(t, users, "volunteer1", models.RoleVolunteer)
	studentA := createTestUser(t, users, "student_a", models.RoleStudent)
	studentB := createTestUser(t, users, "student_b", models.RoleStudent)
	session := createSessionRow(t, sessions, volunteer.ID, 1, time.Now().Add(24*time.Hour))

	results := make(chan error, 2)
	for _, studentID := range []int64{studentA.ID, studentB.ID} {
		go func(id int64) {
			_, err := bookings.Create(ctx, id, session.ID)
			results <- err
		}(studentID)
	}

	var won, lost int
	for i := 0; i < 2; i++ {
		err := <-results
		if err == nil {
			won++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrSessionFull)
		lost++
	}

	// the row lock serializes the two transactions: exactly one seat is sold
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
	counter, active := seatCounters(t, database, session.ID)
	assert.Equal(t, 1, counter)
	assert.Equal(t, counter, active)
}

func TestBookingRepository_CreateRejectsUnavailableSessions(t *testing.T) {
	database := setupTestDatabase(t)
	users := NewUserRepository(database.Pool)
	sessions := NewSessionRepository(database.Pool)
	bookings := NewBookingRepository(database)
	ctx := context.Background()

	volunteer := createTestUser(t, users, "volunteer1", models.RoleVolunteer)
	student := createTestUser(t, users, "student_a", models.RoleStudent)

	t.Run("unknown session", func(t *testing.T) {
		_, err := bookings.Create(ctx, student.ID, 99999)
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("soft-deleted session", func(t *testing.T) {
		session := createSessionRow(t, sessions, volunteer.ID, 3, time.Now().Add(24*time.Hour))
		require.NoError(t, sessions.SoftDelete(ctx, session.ID))

		_, err := bookings.Create(ctx, student.ID, session.ID)
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})
}
