package engine

import (
	"regexp"
	"strconv"

	"github.com/tartampluch/go-shuwen/internal/config"
)

// TimeIndicator is the tagged union describing how the birth time was
// entered: an explicit two-hour branch, a clock time, or not at all.
// Exactly one payload is live; the constructors clear the others so a stale
// payload cannot leak across a mode switch.
type TimeIndicator struct {
	Kind   string `json:"kind"`             // config.TimeMode*
	Branch string `json:"branch,omitempty"` // branch code, Kind == branch
	Clock  string `json:"clock,omitempty"`  // HH:MM, Kind == exact
}

// UnknownTime returns the indicator for an unspecified birth time.
func UnknownTime() TimeIndicator {
	return TimeIndicator{Kind: config.TimeModeUnknown}
}

// BranchTime returns the indicator for an explicit two-hour branch code.
func BranchTime(code string) TimeIndicator {
	return TimeIndicator{Kind: config.TimeModeBranch, Branch: code}
}

// ClockTime returns the indicator for an exact HH:MM clock time.
func ClockTime(value string) TimeIndicator {
	return TimeIndicator{Kind: config.TimeModeExact, Clock: value}
}

// BranchWindow describes one of the twelve traditional two-hour divisions.
type BranchWindow struct {
	Code  string `json:"code"`
	Glyph string `json:"glyph"`
	Label string `json:"label"`
	Range string `json:"range"`
}

// Branches lists the twelve divisions in traditional order. The zi window
// spans midnight; its two halves carry distinct display labels when
// resolved from a clock time.
var Branches = []BranchWindow{
	{Code: "zi", Glyph: "子", Label: "子時", Range: "23:00–00:59"},
	{Code: "chou", Glyph: "丑", Label: "丑時", Range: "01:00–02:59"},
	{Code: "yin", Glyph: "寅", Label: "寅時", Range: "03:00–04:59"},
	{Code: "mao", Glyph: "卯", Label: "卯時", Range: "05:00–06:59"},
	{Code: "chen", Glyph: "辰", Label: "辰時", Range: "07:00–08:59"},
	{Code: "si", Glyph: "巳", Label: "巳時", Range: "09:00–10:59"},
	{Code: "wu", Glyph: "午", Label: "午時", Range: "11:00–12:59"},
	{Code: "wei", Glyph: "未", Label: "未時", Range: "13:00–14:59"},
	{Code: "shen", Glyph: "申", Label: "申時", Range: "15:00–16:59"},
	{Code: "you", Glyph: "酉", Label: "酉時", Range: "17:00–18:59"},
	{Code: "xu", Glyph: "戌", Label: "戌時", Range: "19:00–20:59"},
	{Code: "hai", Glyph: "亥", Label: "亥時", Range: "21:00–22:59"},
}

// branchGlyphs indexes glyphs by code for resolution.
var branchGlyphs = func() map[string]string {
	m := make(map[string]string, len(Branches))
	for _, b := range Branches {
		m[b.Code] = b.Glyph
	}
	return m
}()

// ValidBranch reports whether code is one of the twelve recognized codes.
func ValidBranch(code string) bool {
	_, ok := branchGlyphs[code]
	return ok
}

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// ParseClock validates an HH:MM string. Malformed or out-of-range values
// report !ok; the resolver substitutes the unknown label rather than
// failing.
func ParseClock(value string) (hour, minute int, ok bool) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// ClockBranch maps a valid clock time onto its branch code using half-open,
// minute-granular windows: [23:00, 01:00) is zi, then odd-hour-aligned
// two-hour windows up to hai at [21:00, 23:00).
func ClockBranch(hour, minute int) string {
	total := hour*60 + minute
	if total >= 23*60 || total < 1*60 {
		return Branches[0].Code
	}
	// Windows for chou..hai start at 01:00 and are 120 minutes wide.
	return Branches[1+(total-60)/120].Code
}

// ResolveBranch maps a time indicator onto its canonical display label.
//
// Unknown yields the auspicious-hour label; a branch code yields its glyph
// label (or the unknown label for an unrecognized code); a clock time is
// first checked for the two midnight-straddling zi halves, then mapped onto
// the two-hour windows. Never fails: malformed input resolves to the
// unknown label.
func ResolveBranch(ti TimeIndicator) string {
	switch ti.Kind {
	case config.TimeModeUnknown:
		return config.LabelAuspiciousHour

	case config.TimeModeBranch:
		glyph, ok := branchGlyphs[ti.Branch]
		if !ok {
			return config.LabelUnknownTime
		}
		return glyph + config.SuffixHourGlyph

	case config.TimeModeExact:
		hour, minute, ok := ParseClock(ti.Clock)
		if !ok {
			return config.LabelUnknownTime
		}
		// The zi double-hour spans midnight; tradition names the half
		// before midnight 夜子時 and the half after 早子時.
		if hour == 23 {
			return config.LabelLateZi
		}
		if hour == 0 {
			return config.LabelEarlyZi
		}
		return branchGlyphs[ClockBranch(hour, minute)] + config.SuffixHourGlyph

	default:
		return config.LabelUnknownTime
	}
}
