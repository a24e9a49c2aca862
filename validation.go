package bananagen

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Validation errors
var (
	ErrEmptyPrompt        = errors.New("prompt cannot be empty")
	ErrEmptyImageData     = errors.New("image data cannot be empty")
	ErrInvalidMIMEType    = errors.New("invalid or unsupported MIME type")
	ErrImageTooLarge      = errors.New("image data exceeds maximum size")
	ErrTooManyImages      = errors.New("too many input images")
	ErrInvalidImageCount  = errors.New("number of images must be at least 1")
	ErrInvalidAspectRatio = errors.New("unsupported aspect ratio")
	ErrInvalidImageSize   = errors.New("unsupported resolution")
)

const (
	// MaxImageSize is the maximum allowed input image size in bytes (20MB)
	MaxImageSize = 20 * 1024 * 1024

	// MaxInputImages is the maximum number of input images per request
	MaxInputImages = 14
)

// ValidMIMETypes contains the supported input image MIME types
var ValidMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ValidatePrompt validates a text prompt.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// ValidateGenerateConfig checks the options a caller may set on the CLI.
func ValidateGenerateConfig(c *GenerateConfig) error {
	if c == nil {
		return nil
	}
	if c.NumberOfImages < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidImageCount, c.NumberOfImages)
	}
	if c.AspectRatio != AspectRatioAuto && !slices.Contains(SupportedAspectRatios, c.AspectRatio) {
		return fmt.Errorf("%w: %s", ErrInvalidAspectRatio, c.AspectRatio)
	}
	if c.Size != "" && !slices.Contains(SupportedSizes, c.Size) {
		return fmt.Errorf("%w: %s", ErrInvalidImageSize, c.Size)
	}
	return nil
}

// ValidateInputImage checks raw input bytes and returns their sniffed MIME type.
func ValidateInputImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImageData
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(data), MaxImageSize)
	}
	mimeType := http.DetectContentType(data)
	if !ValidMIMETypes[mimeType] {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIMEType, mimeType)
	}
	return mimeType, nil
}

// ValidateInputCount validates the number of input images.
func ValidateInputCount(n int) error {
	if n > MaxInputImages {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyImages, n, MaxInputImages)
	}
	return nil
}
