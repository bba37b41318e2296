// Package seed creates default demo data on first startup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/app/repositories"
	"github.com/educonnect/educonnect/internal/db"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
	"github.com/educonnect/educonnect/internal/pkg/auth"
)

// CreateDefaultData inserts a demo volunteer, a demo student and one sample
// session so a fresh install has something to show. Existing accounts are
// left untouched.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(database)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	demoPassword, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	subjects := `["Mathematics","Physics"]`
	volunteer := &models.User{
		Username:  "demo_volunteer",
		Email:     "volunteer@educonnect.app",
		Password:  demoPassword,
		FirstName: "Demo",
		LastName:  "Volunteer",
		Role:      models.RoleVolunteer,
		Subjects:  &subjects,
	}
	if err := repos.UserRepository.Create(ctx, volunteer); err != nil {
		if !apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrUsernameExists) {
			lgr.Error().Err(err).Msg("Error creating demo volunteer")
			finalErr = errors.Join(finalErr, err)
		}
		volunteer = nil
	}

	student := &models.User{
		Username:  "demo_student",
		Email:     "student@educonnect.app",
		Password:  demoPassword,
		FirstName: "Demo",
		LastName:  "Student",
		Role:      models.RoleStudent,
	}
	if err := repos.UserRepository.Create(ctx, student); err != nil {
		if !apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrUsernameExists) {
			lgr.Error().Err(err).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// A sample session only makes sense on a first run where the demo
	// volunteer was just created
	if volunteer != nil && volunteer.ID > 0 {
		session := &models.Session{
			Title:       "Introduction to Algebra",
			Description: "A beginner friendly walkthrough of variables, equations and solving for x.",
			Subject:     "Mathematics",
			VolunteerID: volunteer.ID,
			MaxStudents: 5,
			Date:        time.Now().Add(7 * 24 * time.Hour).Truncate(time.Hour),
			Duration:    60,
			Location:    "Online",
		}
		if err := repos.SessionRepository.Create(ctx, session); err != nil {
			lgr.Error().Err(err).Msg("Error creating demo session")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}
