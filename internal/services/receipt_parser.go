package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/foxxcyber/fridgelist/internal/models"
)

// knownStores are matched anywhere in the first lines of a receipt
var knownStores = []string{
	"REWE", "EDEKA", "ALDI", "LIDL", "NETTO", "PENNY", "KAUFLAND", "NORMA",
	"GLOBUS", "REAL", "TEGUT", "DENNS", "ALNATURA", "ROSSMANN", "DM",
}

// ReceiptParser reads OCR text from receipts to prefill the archive form
type ReceiptParser struct {
	excludePatterns []*regexp.Regexp
	datePatterns    []*regexp.Regexp
	totalPatterns   []*regexp.Regexp
	lettersPattern  *regexp.Regexp
	spacePattern    *regexp.Regexp
}

// NewReceiptParser creates a new receipt parser
func NewReceiptParser() *ReceiptParser {
	return &ReceiptParser{
		excludePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(SUMME|GESAMT|ZU\s*ZAHLEN|TOTAL|MWST|UST|NETTO\s+BRUTTO|BAR|GEGEBEN|RÜCKGELD|KARTE|EC|GIROCARD|VISA|MASTERCARD|BON|KASSE|BEDIENER|DATUM|UHRZEIT|TEL|TELEFON|STR\.?|STRASSE|VIELEN\s*DANK|DANKE|STEUER|UID|ST\.?-?NR)\b`),
			regexp.MustCompile(`^\s*[-=*#]+\s*$`),
			regexp.MustCompile(`^\s*\d{5}\s+\S+`), // postcode + city
			regexp.MustCompile(`^[\d\s.,:/-]+$`),
		},
		datePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{2,4})\b`),
			regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`),
			regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`),
		},
		totalPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:SUMME|ZU\s*ZAHLEN|GESAMTBETRAG|GESAMT|TOTAL|BETRAG)\s*(?:EUR|€)?\s*:?\s*(\d{1,5}[.,]\d{2})`),
			regexp.MustCompile(`(?i)^\s*(?:BAR|EC-?KARTE|GIROCARD|KARTENZAHLUNG)\s*(?:EUR|€)?\s*:?\s*(\d{1,5}[.,]\d{2})`),
		},
		lettersPattern: regexp.MustCompile(`\p{L}{3,}`),
		spacePattern:   regexp.MustCompile(`\s+`),
	}
}

// Suggest extracts the store name, total and date from OCR text. Fields
// that cannot be found stay nil.
func (p *ReceiptParser) Suggest(ocrText string) *models.ReceiptSuggestion {
	lines := strings.Split(ocrText, "\n")
	suggestion := &models.ReceiptSuggestion{OCRText: ocrText}

	if store := p.extractStore(lines); store != "" {
		suggestion.StoreName = &store
	}
	if total := p.extractTotal(lines); total != nil {
		suggestion.Amount = total
	}
	if date := p.extractDate(lines); date != nil {
		formatted := date.Format("2006-01-02")
		suggestion.Date = &formatted
	}

	return suggestion
}

// extractStore prefers a known chain in the header, else the first line
// that reads like a name
func (p *ReceiptParser) extractStore(lines []string) string {
	header := lines
	if len(header) > 8 {
		header = header[:8]
	}

	for _, line := range header {
		upper := strings.ToUpper(line)
		for _, store := range knownStores {
			if containsWord(upper, store) {
				return p.cleanLine(line)
			}
		}
	}

	for _, line := range header {
		line = p.cleanLine(line)
		if line == "" || p.shouldExclude(line) || !p.lettersPattern.MatchString(line) {
			continue
		}
		if len([]rune(line)) > 100 {
			continue
		}
		return line
	}
	return ""
}

func containsWord(s, word string) bool {
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z') && r != 'Ä' && r != 'Ö' && r != 'Ü'
	}) {
		if field == word {
			return true
		}
	}
	return false
}

func (p *ReceiptParser) shouldExclude(line string) bool {
	for _, pattern := range p.excludePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// cleanLine collapses whitespace and strips common OCR artifacts
func (p *ReceiptParser) cleanLine(line string) string {
	line = p.spacePattern.ReplaceAllString(line, " ")
	line = strings.ReplaceAll(line, "|", "")
	line = strings.ReplaceAll(line, "\\", "")
	return strings.Trim(strings.TrimSpace(line), "*#-=")
}

// extractDate returns the first plausible date. German receipts print
// DD.MM.YYYY; slashes are read as MM/DD/YYYY.
func (p *ReceiptParser) extractDate(lines []string) *time.Time {
	for _, line := range lines {
		for i, pattern := range p.datePatterns {
			matches := pattern.FindStringSubmatch(line)
			if len(matches) < 4 {
				continue
			}

			a, _ := strconv.Atoi(matches[1])
			b, _ := strconv.Atoi(matches[2])
			c, _ := strconv.Atoi(matches[3])

			var year, month, day int
			switch i {
			case 0:
				day, month, year = a, b, c
			case 1:
				year, month, day = a, b, c
			default:
				month, day, year = a, b, c
			}

			if year < 100 {
				if year > 50 {
					year += 1900
				} else {
					year += 2000
				}
			}

			if month < 1 || month > 12 || day < 1 || day > 31 {
				continue
			}
			date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if date.Day() != day {
				continue
			}
			return &date
		}
	}
	return nil
}

// extractTotal searches from the bottom, where the total is printed.
// Payment lines are only a fallback since cash given can exceed the total.
func (p *ReceiptParser) extractTotal(lines []string) *float64 {
	for _, pattern := range p.totalPatterns {
		for i := len(lines) - 1; i >= 0; i-- {
			matches := pattern.FindStringSubmatch(lines[i])
			if len(matches) < 2 {
				continue
			}
			total, err := strconv.ParseFloat(strings.ReplaceAll(matches[1], ",", "."), 64)
			if err == nil && total > 0 {
				return &total
			}
		}
	}
	return nil
}
