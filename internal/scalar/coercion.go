// internal/scalar/coercion.go
package scalar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

/*
 * Scalar coercion for OTDS attribute values and element text.
 *
 * All coercions are strict: surrounding whitespace is trimmed, then the
 * remaining text must match the scalar's lexical form exactly. Failures wrap
 * types.ErrMalformedValue; the caller attaches the document location.
 *
 * Scalar domains:
 *   - Int: optional sign followed by ASCII digits
 *   - Date: ISO 8601 calendar date (YYYY-MM-DD), normalized to UTC midnight
 *   - Decimal: base-10 fixed point, no exponent; never binary floating point
 *   - Duration: integer count of a DurationUnit, normalized to time.Duration
 *   - TimeOfDay: hh:mm or hh:mm:ss, as an offset from midnight
 *   - Category: official/operator star rating "N" or "N.5"
 */

var (
	intPattern     = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

const dateLayout = "2006-01-02"

// Int parses a signed decimal integer.
func Int(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !intPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not an integer", types.ErrMalformedValue, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Only reachable on overflow
		return 0, fmt.Errorf("%w: %q: %v", types.ErrMalformedValue, s, err)
	}
	return n, nil
}

// Date parses a strict ISO 8601 calendar date.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not an ISO date", types.ErrMalformedValue, s)
	}
	return d, nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in the lexical form accepted by Date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Decimal parses an exact base-10 amount.
// Exponent notation is rejected even though decimal.NewFromString accepts it.
func Decimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a decimal", types.ErrMalformedValue, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q: %v", types.ErrMalformedValue, s, err)
	}
	return d, nil
}

// Duration converts n units into a time.Duration.
// Nights count as whole 24h days.
func Duration(n int, unit vocab.DurationUnit) (time.Duration, error) {
	switch unit {
	case vocab.UnitNights:
		return time.Duration(n) * 24 * time.Hour, nil
	case vocab.UnitHours:
		return time.Duration(n) * time.Hour, nil
	case vocab.UnitMinutes:
		return time.Duration(n) * time.Minute, nil
	case vocab.UnitWeeks:
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("%w: unknown duration unit %q", types.ErrMalformedValue, unit)
	}
}

// TimeOfDay parses hh:mm or hh:mm:ss into an offset from midnight.
func TimeOfDay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a time of day", types.ErrMalformedValue, s)
}

// Category is a star rating: Major 0-6 with Minor 0 or 5, or 7 with Minor 0.
type Category struct {
	Major int
	Minor int
}

func (c Category) String() string {
	return fmt.Sprintf("%d.%d", c.Major, c.Minor)
}

// ParseCategory parses "N" or "N.M" into a Category.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	major, minor, hasMinor := strings.Cut(s, ".")
	var c Category
	var err error
	if c.Major, err = Int(major); err != nil {
		return Category{}, fmt.Errorf("%w: category %q", types.ErrMalformedValue, s)
	}
	if hasMinor {
		if c.Minor, err = Int(minor); err != nil {
			return Category{}, fmt.Errorf("%w: category %q", types.ErrMalformedValue, s)
		}
	}
	switch {
	case c.Major >= 0 && c.Major <= 6 && (c.Minor == 0 || c.Minor == 5):
	case c.Major == 7 && c.Minor == 0:
	default:
		return Category{}, fmt.Errorf("%w: category %q out of range", types.ErrMalformedValue, s)
	}
	return c, nil
}

// Fields splits whitespace-separated list text.
func Fields(s string) []string {
	return strings.Fields(s)
}

// PadRight left-justifies s in a field of width runes, padding with spaces.
// Values already at least width runes long are returned unchanged.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
