package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/utils"
)

// ImageService handles all image-related operations including upload,
// retrieval, and deletion. Keys are namespace-relative paths such as
// "tiles/169..._marble.png" or "projects/169..._patio.jpg".
type ImageService interface {
	// UploadImage validates and uploads an image file under the given asset
	// namespace, returns the storage key
	UploadImage(fileHeader *multipart.FileHeader, namespace string) (string, error)

	// GetImageURL generates an absolute URL for accessing an uploaded image
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(imageKey string) error
}

var imageServiceInstance ImageService

// InitImageService wires the image service: S3-backed when a bucket is
// configured, local filesystem otherwise
func InitImageService(cfg *config.Config) (ImageService, error) {
	if cfg.UseS3() {
		s3Service, err := InitS3Service()
		if err != nil {
			return nil, err
		}
		imageServiceInstance = &S3ImageService{s3Service: s3Service, maxSize: cfg.MaxUploadSizeBytes()}
		return imageServiceInstance, nil
	}

	imageServiceInstance = &LocalImageService{
		uploadDir: cfg.UploadDir,
		baseURL:   cfg.PublicBaseURL,
		maxSize:   cfg.MaxUploadSizeBytes(),
	}
	return imageServiceInstance, nil
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
	maxSize   int64
}

// UploadImage validates and uploads an image file to S3
func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader, namespace string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader, s.maxSize); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader, namespace)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s3Key, nil
}

// GetImageURL generates a presigned URL for accessing an image
func (s *S3ImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

// DeleteImage deletes an image from S3
func (s *S3ImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// LocalImageService implements ImageService on the local filesystem, serving
// assets through the /api/v1/uploads route
type LocalImageService struct {
	uploadDir string
	baseURL   string
	maxSize   int64
}

// UploadImage validates and saves an image file under the upload directory
func (s *LocalImageService) UploadImage(fileHeader *multipart.FileHeader, namespace string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader, s.maxSize); err != nil {
		return "", err
	}

	key, err := utils.SaveUploadedFile(fileHeader, s.uploadDir, namespace)
	if err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return key, nil
}

// GetImageURL resolves the absolute URL of a stored image
func (s *LocalImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	return fmt.Sprintf("%s/api/v1/uploads/%s", s.baseURL, imageKey), nil
}

// DeleteImage removes an image from the local filesystem
func (s *LocalImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	path := filepath.Join(s.uploadDir, filepath.FromSlash(imageKey))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
