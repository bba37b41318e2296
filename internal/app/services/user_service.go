package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
	"github.com/educonnect/educonnect/internal/pkg/filestorage"
)

// MaxUploadSize caps resume and profile picture uploads at 5MB
const MaxUploadSize = 5 << 20

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// UserService defines the interface for profile operations
type UserService interface {
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest, resume, picture *multipart.FileHeader) (*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userStore   UserStore
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore UserStore, fileStorage filestorage.FileStorage, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userStore:   userStore,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// UpdateProfile applies the non-empty fields of req to the user's profile
// and stores any uploaded resume or profile picture. Volunteer-only fields
// are ignored for students. A changed email must not belong to another user.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest, resume, picture *multipart.FileHeader) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Email != "" && req.Email != user.Email {
		exists, err := s.userStore.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		updates["email"] = req.Email
	}

	if user.Role == models.RoleVolunteer {
		if req.EducationQualifications != "" {
			updates["education_qualifications"] = req.EducationQualifications
		}
		if req.Subjects != "" {
			updates["subjects"] = req.Subjects
		}
		if req.Experience != "" {
			updates["experience"] = req.Experience
		}
	}

	if resume != nil {
		if user.Role != models.RoleVolunteer {
			return nil, apperrors.NewBadRequestError("Only volunteers can upload a resume")
		}
		resumeURL, err := s.storeUpload(resume, filestorage.ResumeDir, validateResume)
		if err != nil {
			return nil, err
		}
		if user.ResumeURL != nil {
			_ = s.fileStorage.DeleteFile(*user.ResumeURL)
		}
		updates["resume_url"] = resumeURL
	}

	if picture != nil {
		pictureURL, err := s.storeUpload(picture, filestorage.ProfilePictureDir, validateProfilePicture)
		if err != nil {
			return nil, err
		}
		if user.ProfilePicture != nil {
			_ = s.fileStorage.DeleteFile(*user.ProfilePicture)
		}
		updates["profile_picture"] = pictureURL
	}

	if len(updates) == 0 {
		return user, nil
	}

	updated, err := s.userStore.Update(ctx, userID, updates)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Int("fields", len(updates)).Msg("Profile updated")
	return updated, nil
}

func (s *userServiceImpl) storeUpload(fileHeader *multipart.FileHeader, subPath string, validate func(*multipart.FileHeader) error) (string, error) {
	if fileHeader.Size > MaxUploadSize {
		return "", apperrors.NewBadRequestError("File exceeds the 5MB upload limit")
	}
	if err := validate(fileHeader); err != nil {
		return "", err
	}

	storedPath, err := s.fileStorage.SaveFile(fileHeader, subPath)
	if err != nil {
		return "", fmt.Errorf("error storing file: %w", err)
	}
	return storedPath, nil
}

func validateResume(fileHeader *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedResumeExtensions[ext] {
		return apperrors.NewBadRequestError("Resume must be a PDF or Word document")
	}
	return nil
}

func validateProfilePicture(fileHeader *multipart.FileHeader) error {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewBadRequestError("Profile picture must be an image")
	}
	return nil
}
