// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/sirupsen/logrus"

	"github.com/shamaim/admin-dashboard/internal/config"
)

// StorageService is the product Asset Store. It writes to S3 when AWS
// credentials are configured and to a local directory otherwise.
type StorageService struct {
	s3Client  s3iface.S3API
	aws       config.AWSConfig
	localDir  string
	localBase string
}

type UploadOptions struct {
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

const (
	defaultMaxImageSize = 10 * 1024 * 1024 // 10MB
	maxThumbnailSize    = 5 * 1024 * 1024  // 5MB
)

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{
		aws:       cfg.AWS,
		localDir:  "./uploads",
		localBase: fmt.Sprintf("http://%s:%s/uploads", cfg.Server.Host, cfg.Server.Port),
	}

	if cfg.AWS.AccessKeyID == "" {
		// Local development without S3
		logrus.Warn("AWS credentials not configured, storing product assets locally")
		return s, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	s.s3Client = s3.New(sess)
	return s, nil
}

// NewS3StorageService builds a store around an existing S3 client.
func NewS3StorageService(client s3iface.S3API, awsCfg config.AWSConfig) *StorageService {
	return &StorageService{s3Client: client, aws: awsCfg}
}

// NewLocalStorageService stores assets under dir and serves them from baseURL.
func NewLocalStorageService(dir, baseURL string) *StorageService {
	return &StorageService{localDir: dir, localBase: strings.TrimRight(baseURL, "/")}
}

// LocalDir is the directory local uploads are written to, or "" when S3 is
// in use.
func (s *StorageService) LocalDir() string {
	if s.s3Client != nil {
		return ""
	}
	return s.localDir
}

// Upload stores data under key and returns its public URL. Keys are chosen by
// the caller and never overwritten by another asset.
func (s *StorageService) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if s.s3Client != nil {
		return s.uploadToS3(ctx, data, key, contentType)
	}
	return s.uploadToLocal(data, key)
}

func (s *StorageService) uploadToS3(ctx context.Context, data []byte, key, contentType string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.getS3URL(key), nil
}

func (s *StorageService) uploadToLocal(data []byte, key string) (string, error) {
	path := filepath.Join(s.localDir, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(s.localDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid asset key %q", key)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write asset: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.localBase, key), nil
}

func (s *StorageService) getS3URL(key string) string {
	if s.aws.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.aws.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.aws.S3Bucket, s.aws.Region, key)
}

// GetDefaultUploadOptions returns the staging limits for a product asset
// folder. maxSize overrides the default when positive; thumbnails never
// exceed 5MB.
func GetDefaultUploadOptions(folder string, maxSize int64) UploadOptions {
	opts := UploadOptions{
		MaxSize:      defaultMaxImageSize,
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
	}
	if maxSize > 0 {
		opts.MaxSize = maxSize
	}
	if folder == "thumbnails" && opts.MaxSize > maxThumbnailSize {
		opts.MaxSize = maxThumbnailSize
	}
	return opts
}

// CheckFile enforces size and extension limits on a staged file.
func CheckFile(header *multipart.FileHeader, options UploadOptions) error {
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, options.MaxSize)
	}

	if len(options.AllowedTypes) > 0 {
		fileExt := strings.ToLower(filepath.Ext(header.Filename))
		allowed := false
		for _, allowedType := range options.AllowedTypes {
			if fileExt == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("file type %s is not allowed", fileExt)
		}
	}

	return nil
}

// ValidateImage checks the leading bytes for a JPEG, PNG, GIF or WebP
// signature.
func ValidateImage(data []byte) error {
	if !isValidImageType(data) {
		return fmt.Errorf("invalid image file")
	}
	return nil
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}

	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}
