package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent   RoleType = "student"
	RoleVolunteer RoleType = "volunteer"
)

// Valid reports whether the role is one of the two supported roles.
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleVolunteer
}

// User defines the user model based on the 'users' table.
// The role is fixed at registration and never changes afterwards.
type User struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	Username       string    `json:"username" db:"username" example:"jdoe"`
	Email          string    `json:"email" db:"email" example:"jdoe@example.com"`
	Password       string    `json:"-" db:"password"` // Hashed, excluded from JSON
	FirstName      string    `json:"firstName" db:"first_name" example:"John"`
	LastName       string    `json:"lastName" db:"last_name" example:"Doe"`
	Role           RoleType  `json:"role" db:"role" example:"student"`
	Description    *string   `json:"description,omitempty" db:"description"`
	ProfilePicture *string   `json:"profilePicture,omitempty" db:"profile_picture"`

	// Volunteer-only fields
	EducationQualifications *string `json:"educationQualifications,omitempty" db:"education_qualifications"`
	ResumeURL               *string `json:"resumeUrl,omitempty" db:"resume_url"`
	Subjects                *string `json:"subjects,omitempty" db:"subjects"` // JSON array as string
	Experience              *string `json:"experience,omitempty" db:"experience"`

	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}
