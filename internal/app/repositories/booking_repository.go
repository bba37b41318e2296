package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/db"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
	"github.com/educonnect/educonnect/internal/pkg/dberrors"
)

// BookingRepository handles database operations for bookings and owns the
// session capacity counter. current_students is derived from the active
// booking rows and rewritten inside the same transaction as every booking
// mutation, so the counter can never drift from the source of truth.
type BookingRepository struct {
	database *db.PostgresDB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(database *db.PostgresDB) *BookingRepository {
	return &BookingRepository{database: database}
}

// Create books one seat of a session for a student. The session row is
// locked for the duration of the transaction, which makes the capacity
// check-then-insert atomic: two concurrent bookings for the last seat
// serialize on the lock and the loser gets ErrSessionFull.
func (r *BookingRepository) Create(ctx context.Context, studentID, sessionID int64) (*models.Booking, error) {
	booking := &models.Booking{
		StudentID: studentID,
		SessionID: sessionID,
	}

	err := r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var maxStudents int
		var isActive bool
		err := tx.QueryRow(ctx,
			`SELECT max_students, is_active FROM sessions WHERE id = $1 FOR UPDATE`,
			sessionID,
		).Scan(&maxStudents, &isActive)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrSessionNotFound
			}
			return fmt.Errorf("error locking session: %w", err)
		}

		// Soft-deleted sessions are not visible to students
		if !isActive {
			return apperrors.ErrSessionNotFound
		}

		var alreadyBooked bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(
				SELECT 1 FROM bookings
				WHERE student_id = $1 AND session_id = $2 AND status = 'active'
			)`,
			studentID, sessionID,
		).Scan(&alreadyBooked)
		if err != nil {
			return fmt.Errorf("error checking existing booking: %w", err)
		}
		if alreadyBooked {
			return apperrors.ErrAlreadyBooked
		}

		activeCount, err := countActiveTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if activeCount >= maxStudents {
			return apperrors.ErrSessionFull
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO bookings (student_id, session_id, status)
			 VALUES ($1, $2, 'active')
			 RETURNING id, status, created_at`,
			studentID, sessionID,
		).Scan(&booking.ID, &booking.Status, &booking.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "bookings_active_student_session_key") {
				return apperrors.ErrAlreadyBooked
			}
			return fmt.Errorf("error creating booking: %w", err)
		}

		return recomputeCountTx(ctx, tx, sessionID)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// Cancel marks a booking cancelled and recomputes the session's seat counter
// in the same transaction, freeing the seat immediately.
func (r *BookingRepository) Cancel(ctx context.Context, bookingID int64) (*models.Booking, error) {
	booking := &models.Booking{}
	err := r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE bookings SET status = 'cancelled'
			 WHERE id = $1
			 RETURNING id, student_id, session_id, status, created_at`,
			bookingID,
		).Scan(&booking.ID, &booking.StudentID, &booking.SessionID, &booking.Status, &booking.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrBookingNotFound
			}
			return fmt.Errorf("error cancelling booking: %w", err)
		}

		return recomputeCountTx(ctx, tx, booking.SessionID)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	err := r.database.Pool.QueryRow(ctx,
		`SELECT id, student_id, session_id, status, created_at FROM bookings WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.StudentID, &b.SessionID, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("error retrieving booking: %w", err)
	}
	return &b, nil
}

// GetByStudent retrieves a student's active bookings joined with their still
// active sessions and the owning volunteers, soonest session first. Bookings
// against soft-deleted sessions are filtered out here, not deleted.
func (r *BookingRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Booking, error) {
	query := fmt.Sprintf(`
		SELECT b.id, b.student_id, b.session_id, b.status, b.created_at,
			%s, %s
		FROM bookings b
		JOIN sessions s ON s.id = b.session_id
		JOIN users u ON u.id = s.volunteer_id
		WHERE b.student_id = $1 AND b.status = 'active' AND s.is_active = TRUE
		ORDER BY s.date ASC
	`, sessionColumns, volunteerJoinColumns)

	rows, err := r.database.Pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		var b models.Booking
		var s models.Session
		var v models.User
		err := rows.Scan(
			&b.ID, &b.StudentID, &b.SessionID, &b.Status, &b.CreatedAt,
			&s.ID, &s.Title, &s.Description, &s.Subject, &s.VolunteerID,
			&s.MaxStudents, &s.CurrentStudents, &s.Date, &s.Duration, &s.Location,
			&s.Requirements, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
			&v.ID, &v.Username, &v.Email, &v.FirstName, &v.LastName,
			&v.Role, &v.Description, &v.ProfilePicture,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		s.Volunteer = &v
		b.Session = &s
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return bookings, nil
}

// GetBySession retrieves a session's active bookings joined with the students
func (r *BookingRepository) GetBySession(ctx context.Context, sessionID int64) ([]*models.Booking, error) {
	query := `
		SELECT b.id, b.student_id, b.session_id, b.status, b.created_at,
			u.id, u.username, u.email, u.first_name, u.last_name,
			u.role, u.description, u.profile_picture
		FROM bookings b
		JOIN users u ON u.id = b.student_id
		WHERE b.session_id = $1 AND b.status = 'active'
		ORDER BY b.created_at ASC
	`

	rows, err := r.database.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		var b models.Booking
		var u models.User
		err := rows.Scan(
			&b.ID, &b.StudentID, &b.SessionID, &b.Status, &b.CreatedAt,
			&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.Role, &u.Description, &u.ProfilePicture,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		b.Student = &u
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return bookings, nil
}

func countActiveTx(ctx context.Context, tx pgx.Tx, sessionID int64) (int, error) {
	var count int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE session_id = $1 AND status = 'active'`,
		sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return count, nil
}

func recomputeCountTx(ctx context.Context, tx pgx.Tx, sessionID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE sessions SET
			current_students = (
				SELECT COUNT(*) FROM bookings
				WHERE session_id = $1 AND status = 'active'
			),
			updated_at = NOW()
		WHERE id = $1
	`, sessionID)
	if err != nil {
		return fmt.Errorf("error recomputing session count: %w", err)
	}
	return nil
}
