package filestorage

import "mime/multipart"

// Subdirectories for the two upload kinds
const (
	ResumeDir         = "resumes"
	ProfilePictureDir = "profile-pictures"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile stores an uploaded file under the given subdirectory and
	// returns the path to serve it from
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file. Deleting a missing
	// file is not an error.
	DeleteFile(filePath string) error
}
