package services

import (
	"github.com/foxxcyber/fridgelist/internal/models"
)

// TextExtractor reads text from an encoded image
type TextExtractor interface {
	ExtractText(imageBytes []byte) (string, error)
}

var _ TextExtractor = (*OCRService)(nil)

// ReceiptScanner turns a receipt photo into form suggestions
type ReceiptScanner struct {
	ocr    TextExtractor
	parser *ReceiptParser
}

// NewReceiptScanner creates a scanner
func NewReceiptScanner(ocr TextExtractor, parser *ReceiptParser) *ReceiptScanner {
	return &ReceiptScanner{ocr: ocr, parser: parser}
}

// Scan runs OCR and parses the result
func (s *ReceiptScanner) Scan(imageBytes []byte) (*models.ReceiptSuggestion, error) {
	text, err := s.ocr.ExtractText(imageBytes)
	if err != nil {
		return nil, err
	}
	return s.parser.Suggest(text), nil
}
