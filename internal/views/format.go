package views

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

var germanWeekdays = [...]string{
	"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag",
}

// Formatter renders dates and money for display
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter for a BCP 47 locale. Unknown locales fall back to German.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.German
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Currency formats an amount with two decimals and the euro sign
func (f *Formatter) Currency(amount float64) string {
	return f.printer.Sprintf("%.2f €", amount)
}

// MonthLabel returns e.g. "Januar 2024"
func (f *Formatter) MonthLabel(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%s %d", germanMonths[month-1], year)
}

// ShortDate returns e.g. "5.1.2024"
func (f *Formatter) ShortDate(t time.Time) string {
	return t.Format("2.1.2006")
}

// LongDate returns e.g. "Freitag, 5. Januar 2024"
func (f *Formatter) LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d. %s %d", germanWeekdays[t.Weekday()], t.Day(), germanMonths[t.Month()-1], t.Year())
}

// ParseDate reads an archive date. Plain dates and RFC 3339 timestamps are accepted.
func ParseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
