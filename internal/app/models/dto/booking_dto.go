package dto

// CreateBookingRequest represents a student booking one seat of a session
type CreateBookingRequest struct {
	SessionID int64 `json:"sessionId" binding:"required,min=1"`
}
