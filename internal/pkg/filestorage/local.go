package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect/internal/pkg/logger"
)

// LocalStorage saves uploaded files to a directory on the local filesystem
type LocalStorage struct {
	basePath string // root directory for stored files
	baseURL  string // URL prefix the files are served under, e.g. /uploads
}

// NewLocalStorage creates a LocalStorage rooted at basePath. The directory
// is created if it does not exist.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFile stores the uploaded file under subPath with a generated filename
// and returns the path it can be served from
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dirPath := ls.basePath
	if subPath != "" {
		dirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create storage subdirectory: %w", err)
		}
	}

	// Unique filename so concurrent uploads never collide
	uniqueName := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dirPath, uniqueName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	servedPath := ls.baseURL + "/" + uniqueName
	if subPath != "" {
		servedPath = ls.baseURL + "/" + subPath + "/" + uniqueName
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("savedAs", uniqueName).
		Msg("File saved")

	return servedPath, nil
}

// DeleteFile removes a stored file given its served path. A missing file
// counts as deleted.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	relative := strings.TrimPrefix(filePath, ls.baseURL+"/")
	relative = filepath.Clean(relative)
	if relative == "." || strings.HasPrefix(relative, "..") || filepath.IsAbs(relative) {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, relative)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
