package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
)

// SessionStore is the session persistence contract consumed by SessionService
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	GetByVolunteer(ctx context.Context, volunteerID int64) ([]*models.Session, error)
	GetAvailable(ctx context.Context, studentID *int64, now time.Time) ([]*models.Session, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.Session, error)
	SoftDelete(ctx context.Context, id int64) error
	GetVolunteerStats(ctx context.Context, volunteerID int64, now time.Time) (*models.VolunteerStats, error)
}

// SessionService defines the interface for session lifecycle operations
type SessionService interface {
	CreateSession(ctx context.Context, volunteerID int64, req *dto.CreateSessionRequest) (*models.Session, error)
	UpdateSession(ctx context.Context, sessionID, volunteerID int64, req *dto.UpdateSessionRequest) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID, volunteerID int64) error
	GetSessionByID(ctx context.Context, id int64) (*models.Session, error)
	ListAvailableSessions(ctx context.Context, studentID *int64) ([]*models.Session, error)
	ListSessionsByVolunteer(ctx context.Context, volunteerID int64) ([]*models.Session, error)
	GetVolunteerStats(ctx context.Context, volunteerID int64) (*models.VolunteerStats, error)
}

// sessionServiceImpl implements SessionService
type sessionServiceImpl struct {
	sessionStore SessionStore
	now          func() time.Time
	logger       zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionStore SessionStore, logger zerolog.Logger) SessionService {
	return &sessionServiceImpl{
		sessionStore: sessionStore,
		now:          time.Now,
		logger:       logger,
	}
}

// combineDateTime merges a 2006-01-02 date and a 15:04 time of day into one
// scheduling instant. The two never travel separately past this point.
func combineDateTime(date, timeOfDay string) (time.Time, error) {
	instant, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.Local)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date or time", map[string]interface{}{
			"date": date,
			"time": timeOfDay,
		})
	}
	return instant, nil
}

// CreateSession publishes a new session for a volunteer
func (s *sessionServiceImpl) CreateSession(ctx context.Context, volunteerID int64, req *dto.CreateSessionRequest) (*models.Session, error) {
	instant, err := combineDateTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		VolunteerID: volunteerID,
		MaxStudents: req.MaxStudents,
		Date:        instant,
		Duration:    req.Duration,
		Location:    req.Location,
	}
	if req.Requirements != "" {
		session.Requirements = &req.Requirements
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	s.logger.Info().
		Int64("sessionID", session.ID).
		Int64("volunteerID", volunteerID).
		Time("date", session.Date).
		Msg("Session created")

	return session, nil
}

// UpdateSession applies a partial update to a session owned by the caller.
// Date and time are recombined into a new instant only when both are
// supplied, a lone half of the pair leaves the instant untouched.
func (s *sessionServiceImpl) UpdateSession(ctx context.Context, sessionID, volunteerID int64, req *dto.UpdateSessionRequest) (*models.Session, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.VolunteerID != volunteerID {
		return nil, apperrors.NewForbiddenError("Only the owning volunteer can edit a session")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.MaxStudents != nil {
		updates["max_students"] = *req.MaxStudents
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.Date != nil && req.Time != nil {
		instant, err := combineDateTime(*req.Date, *req.Time)
		if err != nil {
			return nil, err
		}
		updates["date"] = instant
	}

	updated, err := s.sessionStore.Update(ctx, sessionID, updates)
	if err != nil {
		return nil, fmt.Errorf("error updating session: %w", err)
	}

	s.logger.Info().Int64("sessionID", sessionID).Int64("volunteerID", volunteerID).Msg("Session updated")
	return updated, nil
}

// DeleteSession soft-deletes a session owned by the caller. Existing
// bookings stay in place, the session just stops being visible.
func (s *sessionServiceImpl) DeleteSession(ctx context.Context, sessionID, volunteerID int64) error {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.VolunteerID != volunteerID {
		return apperrors.NewForbiddenError("Only the owning volunteer can delete a session")
	}

	if err := s.sessionStore.SoftDelete(ctx, sessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}

	s.logger.Info().Int64("sessionID", sessionID).Int64("volunteerID", volunteerID).Msg("Session soft-deleted")
	return nil
}

// GetSessionByID retrieves a session with its volunteer
func (s *sessionServiceImpl) GetSessionByID(ctx context.Context, id int64) (*models.Session, error) {
	return s.sessionStore.GetByID(ctx, id)
}

// ListAvailableSessions returns the bookable sessions, soonest first. A
// non-nil studentID additionally hides sessions that student already booked.
func (s *sessionServiceImpl) ListAvailableSessions(ctx context.Context, studentID *int64) ([]*models.Session, error) {
	sessions, err := s.sessionStore.GetAvailable(ctx, studentID, s.now())
	if err != nil {
		return nil, fmt.Errorf("error listing available sessions: %w", err)
	}
	return sessions, nil
}

// ListSessionsByVolunteer returns a volunteer's active sessions, newest first
func (s *sessionServiceImpl) ListSessionsByVolunteer(ctx context.Context, volunteerID int64) ([]*models.Session, error) {
	sessions, err := s.sessionStore.GetByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("error listing volunteer sessions: %w", err)
	}
	return sessions, nil
}

// GetVolunteerStats aggregates a volunteer's dashboard numbers
func (s *sessionServiceImpl) GetVolunteerStats(ctx context.Context, volunteerID int64) (*models.VolunteerStats, error) {
	stats, err := s.sessionStore.GetVolunteerStats(ctx, volunteerID, s.now())
	if err != nil {
		return nil, fmt.Errorf("error retrieving volunteer stats: %w", err)
	}
	return stats, nil
}
