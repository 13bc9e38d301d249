package filestorage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/emirkaya/staffdesk/internal/pkg/logger"
)

// S3Storage stores employee images in an S3 (or compatible) bucket.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	baseURL   string
}

// NewS3Storage creates an S3-backed storage. baseURL is the public URL
// under which bucket objects are reachable (CDN or bucket endpoint);
// it is prepended to the object key to form the accessible path.
func NewS3Storage(client *s3.Client, bucket, keyPrefix, baseURL string) (*S3Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("storage base URL is required")
	}
	return &S3Storage{
		client:    client,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFile uploads the file under a unique key and returns its URL.
func (s *S3Storage) SaveFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := uuid.New().String() + ext
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fileHeader.Filename, err)
	}

	logger.Info().Str("bucket", s.bucket).Str("key", key).Msg("File uploaded to object storage")
	return s.baseURL + "/" + key, nil
}

// DeleteFile removes the object referenced by a URL previously
// returned from SaveFile. Unknown URLs are ignored.
func (s *S3Storage) DeleteFile(ctx context.Context, filePath string) error {
	if filePath == "" {
		return nil
	}

	key := strings.TrimPrefix(filePath, s.baseURL+"/")
	if key == filePath || key == "" {
		logger.Warn().Str("path", filePath).Msg("File path is not under the storage base URL, skipping delete")
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
