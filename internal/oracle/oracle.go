// Package oracle abstracts the solar↔lunar calendar conversion behind a
// narrow port. The engine never computes lunar arithmetic itself; it asks
// the oracle and treats the answer as authoritative.
package oracle

import "fmt"

// LunarDate is the oracle's answer for one calendar date.
type LunarDate struct {
	// Year is the lunar year number.
	Year int

	// Month is the lunar month, 1–12. Negative means an intercalary
	// (leap) month: -6 is the leap sixth month.
	Month int

	// Day is the lunar day of month, 1–30.
	Day int

	// YearGanZhi is the sexagenary-cycle label of the year (e.g. 甲子).
	YearGanZhi string

	// YearShengXiao is the zodiac animal of the year.
	YearShengXiao string

	// MonthInChinese and DayInChinese are the oracle's own renderings,
	// used for "today" header labels. May contain simplified characters.
	MonthInChinese string
	DayInChinese   string
}

// LeapMonth reports whether the date falls in an intercalary month.
func (d LunarDate) LeapMonth() bool {
	return d.Month < 0
}

// MonthNumber returns the month without the leap sign.
func (d LunarDate) MonthNumber() int {
	if d.Month < 0 {
		return -d.Month
	}
	return d.Month
}

// Oracle is the calendar collaborator contract. Implementations must not
// panic across this boundary; failures surface as errors so the caller can
// degrade a single derived field instead of the whole projection.
type Oracle interface {
	// FromSolar converts a solar (year, month, day) to its lunar date.
	FromSolar(year, month, day int) (LunarDate, error)

	// FromLunar resolves a lunar (year, month, day); the engine uses it
	// with (year, 1, 1) for pure zodiac-by-year lookups.
	FromLunar(year, month, day int) (LunarDate, error)
}

// Fixed is a fixture oracle for tests: it returns canned answers keyed by
// solar date and lunar year.
type Fixed struct {
	Solar map[[3]int]LunarDate
	Lunar map[int]LunarDate
	Err   error
}

// FromSolar implements Oracle.
func (f *Fixed) FromSolar(year, month, day int) (LunarDate, error) {
	if f.Err != nil {
		return LunarDate{}, f.Err
	}
	d, ok := f.Solar[[3]int{year, month, day}]
	if !ok {
		return LunarDate{}, fmt.Errorf("no fixture for %04d-%02d-%02d", year, month, day)
	}
	return d, nil
}

// FromLunar implements Oracle.
func (f *Fixed) FromLunar(year, month, day int) (LunarDate, error) {
	if f.Err != nil {
		return LunarDate{}, f.Err
	}
	d, ok := f.Lunar[year]
	if !ok {
		return LunarDate{}, fmt.Errorf("no fixture for lunar year %d", year)
	}
	return d, nil
}
