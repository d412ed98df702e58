//go:build !windows

package services

import (
	"fmt"
	"os"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// OCRService reads text from receipt photos with tesseract
type OCRService struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewOCRService creates a new OCR service for the given tesseract
// language, e.g. "deu" or "deu+eng"
func NewOCRService(language string) (*OCRService, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// receipts are one uniform block of text
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &OCRService{client: client}, nil
}

// ExtractText returns the text found in an encoded image
func (s *OCRService) ExtractText(imageBytes []byte) (string, error) {
	tmpFile, err := os.CreateTemp("", "receipt-*.img")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(imageBytes); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	// the tesseract handle is not safe for concurrent use
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.SetImage(tmpFile.Name()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := s.client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}

// Close releases OCR resources
func (s *OCRService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
