package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/attachment"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// Downscale parameters for attachment photos. Anything larger than
// maxStoredSize after decoding gets resized and re-encoded; the 10MB
// ceiling in the attachment domain rejects uploads before they get here.
const (
	maxStoredSize = 1 << 20 // 1MB stored target
	maxDimension  = 1920    // longest side in pixels after downscale
)

type FileService interface {
	// Attachment photo uploads (downscaled transparently)
	UploadAttachmentPhoto(ctx context.Context, timeSheetID string, file io.Reader, filename string) (string, string, error)

	// Signature image uploads
	UploadSignature(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Exported PDF storage
	UploadExport(ctx context.Context, userID string, content []byte, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAttachmentPhoto stores one attachment photo, downscaling large
// images before they hit disk. Returns the stored path and content type.
func (s *fileServiceImpl) UploadAttachmentPhoto(ctx context.Context, timeSheetID string, file io.Reader, filename string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", "", attachment.ErrNotAnImage
	}

	// Read the entire file into memory; the size ceiling was enforced
	// during validation.
	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(buffer)) > attachment.MaxUploadSize {
		return "", "", attachment.ErrFileTooLarge
	}

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	// Downscale oversized photos; output becomes JPEG
	if len(buffer) > maxStoredSize {
		buffer, err = downscaleImage(buffer, maxStoredSize)
		if err != nil {
			return "", "", fmt.Errorf("failed to downscale image: %w", err)
		}
		ext = ".jpg"
		contentType = "image/jpeg"
	}

	uniqueID := uuid.New().String()
	timestamp := time.Now().Unix()
	newFilename := fmt.Sprintf("%s-%d%s", uniqueID, timestamp, ext)
	path := filepath.Join("attachments", timeSheetID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(buffer), path, contentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload attachment photo: %w", err)
	}

	return uploadedPath, contentType, nil
}

// UploadSignature stores a user's signature image.
func (s *fileServiceImpl) UploadSignature(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := []string{".jpg", ".jpeg", ".png"}

	isValid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			isValid = true
			break
		}
	}

	if !isValid {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s%s", userID, uniqueID, ext)
	path := filepath.Join("signatures", userID, newFilename)

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload signature: %w", err)
	}

	return uploadedPath, nil
}

// UploadExport stores a generated PDF.
func (s *fileServiceImpl) UploadExport(ctx context.Context, userID string, content []byte, filename string) (string, error) {
	timestamp := time.Now().Unix()
	newFilename := fmt.Sprintf("%d-%s", timestamp, filename)
	path := filepath.Join("exports", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(content), path, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// ==================== HELPER FUNCTIONS ====================

// downscaleImage shrinks an image until its encoded size fits maxSize.
// Dimensions are capped first, then JPEG quality steps down.
func downscaleImage(buffer []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Cap the longest side
	longest := width
	if height > longest {
		longest = height
	}
	if longest > maxDimension {
		ratio := float64(maxDimension) / float64(longest)
		width = int(math.Round(float64(width) * ratio))
		height = int(math.Round(float64(height) * ratio))
		img = resizeImage(img, width, height)
	}

	// Step quality down until the encoded size fits
	quality := 85
	var compressed []byte
	for {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize || quality <= 50 {
			return compressed, nil
		}
		quality -= 5
	}
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
