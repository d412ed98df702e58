//go:build windows

package services

import (
	"errors"
)

var errOCRUnavailable = errors.New("OCR is not available on Windows, run the server in the Docker image")

// OCRService is a stub; tesseract is only linked on unix builds
type OCRService struct{}

// NewOCRService always fails on Windows
func NewOCRService(language string) (*OCRService, error) {
	return nil, errOCRUnavailable
}

// ExtractText always fails on Windows
func (s *OCRService) ExtractText(imageBytes []byte) (string, error) {
	return "", errOCRUnavailable
}

// Close releases OCR resources
func (s *OCRService) Close() error {
	return nil
}
