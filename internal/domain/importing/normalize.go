package importing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	// Excel serial dates count days from 1899-12-30; the Unix epoch
	// falls on serial day 25569.
	excelEpochOffsetDays = 25569

	isoDate = "2006-01-02"

	// DefaultStatus is what unrecognized status values normalize to.
	DefaultStatus = "pending"
)

// NormalizeDate accepts DD/MM/YYYY, DD-MM-YYYY or a numeric spreadsheet
// serial date and returns an ISO YYYY-MM-DD string.
func NormalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty date")
	}

	var sep string
	switch {
	case strings.Contains(value, "/"):
		sep = "/"
	case strings.Contains(value, "-"):
		sep = "-"
	default:
		serial, err := strconv.ParseFloat(value, 64)
		if err != nil || serial <= 0 {
			return "", fmt.Errorf("invalid date %q", value)
		}
		millis := int64((serial - excelEpochOffsetDays) * 86400 * 1000)
		return time.UnixMilli(millis).UTC().Format(isoDate), nil
	}

	parts := strings.Split(value, sep)
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %q", value)
	}

	day, dayErr := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, monthErr := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, yearErr := strconv.Atoi(strings.TrimSpace(parts[2]))
	if dayErr != nil || monthErr != nil || yearErr != nil {
		return "", fmt.Errorf("invalid date %q", value)
	}

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if parsed.Year() != year || parsed.Month() != time.Month(month) || parsed.Day() != day {
		return "", fmt.Errorf("invalid calendar date %q", value)
	}

	return parsed.Format(isoDate), nil
}

// NormalizeAmount strips a leading alphabetic currency code (e.g.
// "QAR") and thousands separators, then parses the remainder as a
// decimal. A non-numeric remainder is an error, never a silent zero.
func NormalizeAmount(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)

	i := 0
	for i < len(trimmed) && (unicode.IsLetter(rune(trimmed[i])) || trimmed[i] == ' ') {
		i++
	}
	trimmed = strings.TrimSpace(trimmed[i:])
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")

	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", value)
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", value)
	}
	return amount, nil
}

// NormalizeStatus maps value onto the allow-list case-insensitively.
// Anything outside the list normalizes to DefaultStatus; status values
// are non-critical and never fail a row.
func NormalizeStatus(value string, allowed []string) string {
	candidate := strings.ToLower(strings.TrimSpace(value))
	for _, status := range allowed {
		if candidate == status {
			return status
		}
	}
	return DefaultStatus
}
