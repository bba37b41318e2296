package dto

// UpdateProfileRequest represents profile update data. All fields are
// optional, empty values are ignored rather than written. Resume and profile
// picture files arrive as multipart parts next to these form fields.
type UpdateProfileRequest struct {
	FirstName               string `form:"firstName"`
	LastName                string `form:"lastName"`
	Email                   string `form:"email" binding:"omitempty,email"`
	Description             string `form:"description"`
	EducationQualifications string `form:"educationQualifications"`
	Subjects                string `form:"subjects"`
	Experience              string `form:"experience"`
}
