package models

import "time"

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a student's claim on one seat of a session.
// Bookings are never deleted, cancellation flips the status.
type Booking struct {
	ID        int64         `json:"id" db:"id"`
	StudentID int64         `json:"studentId" db:"student_id"`
	SessionID int64         `json:"sessionId" db:"session_id"`
	Status    BookingStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`

	// Related entities
	Session *Session `json:"session,omitempty"`
	Student *User    `json:"student,omitempty"`
}
