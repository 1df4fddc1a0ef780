package engine

import (
	"fmt"

	"github.com/tartampluch/go-shuwen/internal/config"
	"github.com/tartampluch/go-shuwen/internal/oracle"
	"github.com/tartampluch/go-shuwen/internal/zh"
)

// Subject carries the committed inputs a derivation needs. It is the
// engine-side view of a birth record: primitives only, no persistence.
type Subject struct {
	Gender    string // config.Gender*
	BirthDate *SolarDate
	Time      TimeIndicator
}

// DerivedFacts is a pure projection of a committed subject. It is
// recomputed on demand and never persisted. Fields that need a missing
// input carry the unavailable sentinel; fields the oracle failed on carry
// the derivation-failed label, while the rest still compute.
type DerivedFacts struct {
	LunarYear     string `json:"lunarYear"`
	LunarBirthday string `json:"lunarBirthday"`
	Zodiac        string `json:"zodiac"`
	TimeBranch    string `json:"timeBranch"`
	Handedness    string `json:"handedness"`
	Age           int    `json:"age,omitempty"`
	AgeKnown      bool   `json:"ageKnown"`
	AgeSummary    string `json:"ageSummary,omitempty"`
}

// TodayFacts are the header labels for the effective calendar day.
type TodayFacts struct {
	Date        SolarDate `json:"date"`
	LunarMD     string    `json:"lunarMD"`
	GanZhiYear  string    `json:"ganzhiYear"`
	RocYear     int       `json:"rocYear"`
	LunarZodiac string    `json:"lunarZodiac"`
}

// DeriveFacts assembles the full fact set for a committed subject.
func DeriveFacts(o oracle.Oracle, s Subject, today SolarDate) DerivedFacts {
	facts := DerivedFacts{
		TimeBranch: zh.Normalize(ResolveBranch(s.Time)),
		Handedness: handedness(s.Gender),
	}

	if s.BirthDate == nil {
		facts.LunarYear = config.LabelUnavailable
		facts.LunarBirthday = config.LabelUnavailable
		facts.Zodiac = config.LabelUnavailable
		return facts
	}

	bd := *s.BirthDate
	facts.Age = today.Year - bd.Year + 1
	facts.AgeKnown = true
	facts.AgeSummary = fmt.Sprintf(config.FormatAgeSummary, today.Year, bd.Year, facts.Age)

	ld, err := o.FromSolar(bd.Year, bd.Month, bd.Day)
	if err != nil {
		facts.LunarYear = config.LabelDerivationFailed
		facts.LunarBirthday = config.LabelDerivationFailed
		facts.Zodiac = config.LabelDerivationFailed
		return facts
	}

	roc := ld.Year - config.RepublicEpochYear
	facts.LunarYear = zh.Normalize(fmt.Sprintf(config.FormatLunarYearLabel, ld.YearGanZhi, roc))
	facts.LunarBirthday = zh.Normalize(formatLunarBirthday(ld))
	facts.Zodiac = zh.Normalize(ld.YearShengXiao)
	return facts
}

// ComposeToday assembles the effective-day header labels.
func ComposeToday(o oracle.Oracle, today SolarDate) TodayFacts {
	facts := TodayFacts{
		Date:    today,
		RocYear: today.Year - config.RepublicEpochYear,
	}

	ld, err := o.FromSolar(today.Year, today.Month, today.Day)
	if err != nil {
		facts.LunarMD = config.LabelDerivationFailed
		facts.GanZhiYear = config.LabelDerivationFailed
		facts.LunarZodiac = config.LabelDerivationFailed
		return facts
	}

	facts.LunarMD = zh.Normalize(ld.MonthInChinese + config.SuffixMonthGlyph + ld.DayInChinese)
	facts.GanZhiYear = zh.Normalize(ld.YearGanZhi + config.SuffixYearGlyph)

	// Zodiac of the lunar year in force, not of the solar year: around the
	// new year the two disagree.
	zo, err := o.FromLunar(ld.Year, 1, 1)
	if err != nil {
		facts.LunarZodiac = config.LabelDerivationFailed
		return facts
	}
	facts.LunarZodiac = zh.Normalize(config.PrefixZodiac + zo.YearShengXiao)
	return facts
}

func handedness(gender string) string {
	switch gender {
	case config.GenderMale:
		return config.LabelLeftHand
	case config.GenderFemale:
		return config.LabelRightHand
	default:
		return config.LabelUnavailable
	}
}

// Numeral tables for lunar month and day rendering.
var (
	monthNumerals = []string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十", "十一", "十二"}
	dayDigits     = []string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}
)

// formatLunarBirthday renders "{閏}{month}月{day}日" with the traditional
// day numeral rules: 十 for 10, 十X for 11–19, 二十 for 20, 二十X for
// 21–29, 三十 for 30.
func formatLunarBirthday(ld oracle.LunarDate) string {
	month := ld.MonthNumber()
	monthText := monthNumerals[month]

	var dayText string
	day := ld.Day
	switch {
	case day < 10:
		dayText = dayDigits[day]
	case day == 10:
		dayText = "十"
	case day < 20:
		dayText = "十" + dayDigits[day-10]
	case day == 20:
		dayText = "二十"
	case day < 30:
		dayText = "二十" + dayDigits[day-20]
	default:
		dayText = "三十"
	}

	label := monthText + config.SuffixMonthGlyph + dayText + config.SuffixDayGlyph
	if ld.LeapMonth() {
		label = config.PrefixLeapMonth + label
	}
	return label
}
