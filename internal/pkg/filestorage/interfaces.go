package filestorage

import (
	"context"
	"mime/multipart"
)

// FileStorage defines the interface for employee image storage.
// SaveFile returns the accessible path/URL under which the stored file
// can later be fetched; that value is what gets persisted on the
// employee record and passed back to DeleteFile.
type FileStorage interface {
	SaveFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
	DeleteFile(ctx context.Context, filePath string) error
}
