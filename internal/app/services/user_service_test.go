package services

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
)

type FileStorageMock struct{ mock.Mock }

func (m *FileStorageMock) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	args := m.Called(fileHeader, subPath)
	return args.String(0), args.Error(1)
}
func (m *FileStorageMock) DeleteFile(filePath string) error {
	return m.Called(filePath).Error(0)
}

func fileHeader(filename, contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: filename,
		Header:   header,
		Size:     size,
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	student := &models.User{ID: 5, Email: "s@example.com", Role: models.RoleStudent}
	volunteer := &models.User{ID: 2, Email: "v@example.com", Role: models.RoleVolunteer}

	t.Run("applies only non-empty fields", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		users.On("GetByID", ctx, int64(5)).Return(student, nil)
		users.On("Update", ctx, int64(5), map[string]interface{}{
			"first_name": "Jane",
		}).Return(student, nil)

		_, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{FirstName: "Jane"}, nil, nil)
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("ignores volunteer fields for students", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		users.On("GetByID", ctx, int64(5)).Return(student, nil)
		users.On("Update", ctx, int64(5), map[string]interface{}{
			"description": "Curious learner",
		}).Return(student, nil)

		_, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{
			Description: "Curious learner",
			Subjects:    `["Math"]`,
			Experience:  "none",
		}, nil, nil)
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("no changes returns the current profile", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		users.On("GetByID", ctx, int64(5)).Return(student, nil)

		user, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an email already in use", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		users.On("GetByID", ctx, int64(5)).Return(student, nil)
		users.On("EmailExists", ctx, "taken@example.com").Return(true, nil)

		_, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{Email: "taken@example.com"}, nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("stores a volunteer resume", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		resume := fileHeader("cv.pdf", "application/pdf", 1024)

		users.On("GetByID", ctx, int64(2)).Return(volunteer, nil)
		files.On("SaveFile", resume, "resumes").Return("/uploads/resumes/abc.pdf", nil)
		users.On("Update", ctx, int64(2), map[string]interface{}{
			"resume_url": "/uploads/resumes/abc.pdf",
		}).Return(volunteer, nil)

		_, err := svc.UpdateProfile(ctx, 2, &dto.UpdateProfileRequest{}, resume, nil)
		require.NoError(t, err)
		files.AssertExpectations(t)
	})

	t.Run("rejects a resume from a student", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		users.On("GetByID", ctx, int64(5)).Return(student, nil)

		_, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{},
			fileHeader("cv.pdf", "application/pdf", 1024), nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		files.AssertNotCalled(t, "SaveFile", mock.Anything, mock.Anything)
	})

	t.Run("rejects a resume with the wrong extension", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		users.On("GetByID", ctx, int64(2)).Return(volunteer, nil)

		_, err := svc.UpdateProfile(ctx, 2, &dto.UpdateProfileRequest{},
			fileHeader("cv.exe", "application/octet-stream", 1024), nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects an oversized upload", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		users.On("GetByID", ctx, int64(2)).Return(volunteer, nil)

		_, err := svc.UpdateProfile(ctx, 2, &dto.UpdateProfileRequest{},
			fileHeader("cv.pdf", "application/pdf", MaxUploadSize+1), nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		files.AssertNotCalled(t, "SaveFile", mock.Anything, mock.Anything)
	})

	t.Run("rejects a non-image profile picture", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		users.On("GetByID", ctx, int64(5)).Return(student, nil)

		_, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{},
			nil, fileHeader("pic.txt", "text/plain", 512))
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("replacing a picture deletes the old one", func(t *testing.T) {
		users := new(UserStoreMock)
		files := new(FileStorageMock)
		svc := NewUserService(users, files, zerolog.Nop())

		oldPicture := "/uploads/profile-pictures/old.png"
		withPicture := &models.User{ID: 5, Email: "s@example.com", Role: models.RoleStudent, ProfilePicture: &oldPicture}
		picture := fileHeader("new.png", "image/png", 2048)

		users.On("GetByID", ctx, int64(5)).Return(withPicture, nil)
		files.On("SaveFile", picture, "profile-pictures").Return("/uploads/profile-pictures/new.png", nil)
		files.On("DeleteFile", oldPicture).Return(nil)
		users.On("Update", ctx, int64(5), map[string]interface{}{
			"profile_picture": "/uploads/profile-pictures/new.png",
		}).Return(withPicture, nil)

		_, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{}, nil, picture)
		require.NoError(t, err)
		files.AssertExpectations(t)
	})
}
