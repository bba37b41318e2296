package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
)

const sessionColumns = `s.id, s.title, s.description, s.subject, s.volunteer_id,
	s.max_students, s.current_students, s.date, s.duration, s.location,
	s.requirements, s.is_active, s.created_at, s.updated_at`

// volunteerJoinColumns is the public subset of the owning volunteer carried
// alongside every session row. The password hash never leaves the store.
const volunteerJoinColumns = `u.id, u.username, u.email, u.first_name, u.last_name,
	u.role, u.description, u.profile_picture`

// SessionRepository handles database operations for tutoring sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func scanSessionWithVolunteer(row pgx.Row) (*models.Session, error) {
	var s models.Session
	var v models.User
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Subject,
		&s.VolunteerID,
		&s.MaxStudents,
		&s.CurrentStudents,
		&s.Date,
		&s.Duration,
		&s.Location,
		&s.Requirements,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
		&v.ID,
		&v.Username,
		&v.Email,
		&v.FirstName,
		&v.LastName,
		&v.Role,
		&v.Description,
		&v.ProfilePicture,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error scanning session: %w", err)
	}
	s.Volunteer = &v
	return &s, nil
}

func querySessionsWithVolunteer(ctx context.Context, db *pgxpool.Pool, query string, args ...interface{}) ([]*models.Session, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session, err := scanSessionWithVolunteer(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sessions, nil
}

// Create inserts a new session and fills in the generated fields
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (title, description, subject, volunteer_id,
			max_students, current_students, date, duration, location,
			requirements, is_active)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9, TRUE)
		RETURNING id, current_students, is_active, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		session.Title,
		session.Description,
		session.Subject,
		session.VolunteerID,
		session.MaxStudents,
		session.Date,
		session.Duration,
		session.Location,
		session.Requirements,
	).Scan(&session.ID, &session.CurrentStudents, &session.IsActive, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetByID retrieves a session with its owning volunteer
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM sessions s
		JOIN users u ON u.id = s.volunteer_id
		WHERE s.id = $1
	`, sessionColumns, volunteerJoinColumns)

	return scanSessionWithVolunteer(r.db.QueryRow(ctx, query, id))
}

// GetByVolunteer retrieves a volunteer's active sessions, newest created first
func (r *SessionRepository) GetByVolunteer(ctx context.Context, volunteerID int64) ([]*models.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM sessions s
		JOIN users u ON u.id = s.volunteer_id
		WHERE s.volunteer_id = $1 AND s.is_active = TRUE
		ORDER BY s.created_at DESC
	`, sessionColumns, volunteerJoinColumns)

	return querySessionsWithVolunteer(ctx, r.db, query, volunteerID)
}

// GetAvailable retrieves the bookable sessions: active, scheduled strictly in
// the future and with at least one free seat, soonest first. When studentID is
// non-nil, sessions that student already holds an active booking for are
// excluded as well.
func (r *SessionRepository) GetAvailable(ctx context.Context, studentID *int64, now time.Time) ([]*models.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM sessions s
		JOIN users u ON u.id = s.volunteer_id
		WHERE s.is_active = TRUE
		  AND s.date > $1
		  AND s.current_students < s.max_students
	`, sessionColumns, volunteerJoinColumns)

	args := []interface{}{now}
	if studentID != nil {
		query += `
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.session_id = s.id AND b.student_id = $2 AND b.status = 'active'
		  )`
		args = append(args, *studentID)
	}
	query += `
		ORDER BY s.date ASC`

	return querySessionsWithVolunteer(ctx, r.db, query, args...)
}

// Update applies a partial update to a session. current_students and
// is_active are deliberately absent from every caller's update map, the
// capacity counter belongs to the booking repository alone.
func (r *SessionRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.Session, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	builder := squirrel.Update("sessions").
		SetMap(updates).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Suffix(`RETURNING id, title, description, subject, volunteer_id,
			max_students, current_students, date, duration, location,
			requirements, is_active, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var s models.Session
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Subject,
		&s.VolunteerID,
		&s.MaxStudents,
		&s.CurrentStudents,
		&s.Date,
		&s.Duration,
		&s.Location,
		&s.Requirements,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error updating session: %w", err)
	}

	return &s, nil
}

// SoftDelete marks a session inactive. The row and its bookings persist.
func (r *SessionRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sessions SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// GetVolunteerStats aggregates dashboard numbers for a volunteer
func (r *SessionRepository) GetVolunteerStats(ctx context.Context, volunteerID int64, now time.Time) (*models.VolunteerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE date > $2)
		FROM sessions
		WHERE volunteer_id = $1 AND is_active = TRUE
	`

	stats := &models.VolunteerStats{}
	err := r.db.QueryRow(ctx, query, volunteerID, now).Scan(&stats.TotalSessions, &stats.UpcomingSessions)
	if err != nil {
		return nil, fmt.Errorf("error counting sessions: %w", err)
	}

	studentsQuery := `
		SELECT COUNT(DISTINCT b.student_id)
		FROM bookings b
		JOIN sessions s ON s.id = b.session_id
		WHERE s.volunteer_id = $1 AND b.status = 'active'
	`

	err = r.db.QueryRow(ctx, studentsQuery, volunteerID).Scan(&stats.StudentsHelped)
	if err != nil {
		return nil, fmt.Errorf("error counting students helped: %w", err)
	}

	return stats, nil
}
