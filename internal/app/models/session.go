package models

import "time"

// Session represents a tutoring session published by a volunteer.
//
// CurrentStudents is a derived counter: it always reflects the number of
// active bookings for the session and is written only by the booking
// repository, never from client input.
type Session struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Subject         string    `json:"subject" db:"subject"`
	VolunteerID     int64     `json:"volunteerId" db:"volunteer_id"`
	MaxStudents     int       `json:"maxStudents" db:"max_students"`
	CurrentStudents int       `json:"currentStudents" db:"current_students"`
	Date            time.Time `json:"date" db:"date"`
	Duration        int       `json:"duration" db:"duration"` // minutes
	Location        string    `json:"location" db:"location"`
	Requirements    *string   `json:"requirements,omitempty" db:"requirements"`
	IsActive        bool      `json:"isActive" db:"is_active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Volunteer *User `json:"volunteer,omitempty"`
}

// IsFull reports whether every seat of the session is taken.
func (s *Session) IsFull() bool {
	return s.CurrentStudents >= s.MaxStudents
}

// VolunteerStats aggregates a volunteer's dashboard numbers.
type VolunteerStats struct {
	TotalSessions    int `json:"totalSessions"`
	StudentsHelped   int `json:"studentsHelped"`
	UpcomingSessions int `json:"upcomingSessions"`
}
