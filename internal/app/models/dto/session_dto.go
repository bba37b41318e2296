package dto

// CreateSessionRequest represents the request to publish a new session.
// Date and time arrive as separate strings and are combined into a single
// scheduling instant during validation.
type CreateSessionRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"required"`
	Subject      string `json:"subject" binding:"required,max=100"`
	MaxStudents  int    `json:"maxStudents" binding:"required,min=1"`
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	Time         string `json:"time" binding:"required,datetime=15:04"`
	Duration     int    `json:"duration" binding:"required,min=1"` // minutes
	Location     string `json:"location" binding:"required"`
	Requirements string `json:"requirements"`
}

// UpdateSessionRequest represents a partial session update. Only supplied
// fields are applied. Date and time are recombined into a new instant only
// when both are present. CurrentStudents and IsActive are not settable here.
type UpdateSessionRequest struct {
	Title        *string `json:"title" binding:"omitempty,max=200"`
	Description  *string `json:"description"`
	Subject      *string `json:"subject" binding:"omitempty,max=100"`
	MaxStudents  *int    `json:"maxStudents" binding:"omitempty,min=1"`
	Date         *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time         *string `json:"time" binding:"omitempty,datetime=15:04"`
	Duration     *int    `json:"duration" binding:"omitempty,min=1"`
	Location     *string `json:"location"`
	Requirements *string `json:"requirements"`
}
