// Package filestorage persists uploaded employee images.
package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/emirkaya/staffdesk/internal/pkg/logger"
)

// LocalStorage saves files to the local filesystem. Files are served
// back as static content under the /uploads URL path.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // optional URL prefix prepended to returned paths
}

// NewLocalStorage creates a new LocalStorage instance, ensuring the
// base directory exists.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFile stores an uploaded file under a unique filename and returns
// its accessible path.
func (ls *LocalStorage) SaveFile(_ context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Unique filename to prevent collisions between uploads.
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := "uploads/" + uniqueFilename
	if ls.baseURL != "" {
		accessiblePath = strings.TrimRight(ls.baseURL, "/") + "/" + uniqueFilename
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("savedAs", uniqueFilename).Msg("File saved")
	return accessiblePath, nil
}

// DeleteFile removes a stored file. It accepts the accessible path as
// returned by SaveFile and is idempotent: deleting a missing file is
// not an error.
func (ls *LocalStorage) DeleteFile(_ context.Context, filePath string) error {
	if filePath == "" {
		return nil
	}

	filename := filepath.Base(filePath)
	if filename == "" || filename == "." || filename == "/" || filename == "uploads" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}
