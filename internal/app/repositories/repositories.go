package repositories

import (
	"github.com/educonnect/educonnect/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	SessionRepository *SessionRepository
	BookingRepository *BookingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(database.Pool),
		SessionRepository: NewSessionRepository(database.Pool),
		BookingRepository: NewBookingRepository(database),
	}
}
