package engine

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/tartampluch/go-shuwen/internal/config"
)

// SolarDate is a plain Gregorian calendar date with no time-of-day and no
// timezone attached. The timezone is applied when a date is parsed or when
// "today" is computed, never stored.
type SolarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String renders the canonical YYYY-MM-DD form.
func (d SolarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is unset.
func (d SolarDate) IsZero() bool {
	return d == SolarDate{}
}

var birthDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ParseBirthDate validates a solar birth date string against the active
// timezone. The date must be syntactically well-formed, a real Gregorian
// date, and must keep its day identity when anchored at local noon in the
// zone (the round-trip invariant).
func ParseBirthDate(value, tz string) (SolarDate, error) {
	if !birthDatePattern.MatchString(value) {
		return SolarDate{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
	}

	loc := loadLocation(tz)
	parsed, err := time.ParseInLocation(config.DateFormatFullDash, value, loc)
	if err != nil {
		// time.ParseInLocation rejects impossible dates like Feb 30.
		return SolarDate{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}

	// Anchor at noon so no real-world DST transition can shift the day.
	noon := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, loc)
	y, m, d := noon.In(loc).Date()
	if y != parsed.Year() || m != parsed.Month() || d != parsed.Day() {
		return SolarDate{}, fmt.Errorf("%s: %q", config.ErrDateRoundTrip, value)
	}

	return SolarDate{Year: y, Month: int(m), Day: d}, nil
}

// loadLocation resolves a timezone identifier, degrading to the default
// zone (and finally UTC) rather than failing. A bad timezone is a
// malformed-input condition, recovered locally per the error taxonomy.
func loadLocation(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err == nil {
		return loc
	}
	slog.Warn(config.ErrTimezoneLoad,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyTimezone, tz,
		config.LogKeyError, err,
	)
	loc, err = time.LoadLocation(config.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
