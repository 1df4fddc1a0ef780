package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-shuwen/internal/engine"
	"github.com/tartampluch/go-shuwen/internal/oracle"
)

// fixtureOracle returns canned dates in the oracle's raw (partly
// simplified) form so the tests also cover normalization.
func fixtureOracle() *oracle.Fixed {
	return &oracle.Fixed{
		Solar: map[[3]int]oracle.LunarDate{
			{1990, 6, 15}: {
				Year: 1990, Month: 5, Day: 23,
				YearGanZhi: "庚午", YearShengXiao: "马",
				MonthInChinese: "五", DayInChinese: "廿三",
			},
			{2024, 7, 30}: {
				Year: 2024, Month: -6, Day: 10,
				YearGanZhi: "甲辰", YearShengXiao: "龙",
				MonthInChinese: "六", DayInChinese: "初十",
			},
			{2025, 5, 1}: {
				Year: 2025, Month: 4, Day: 4,
				YearGanZhi: "乙巳", YearShengXiao: "蛇",
				MonthInChinese: "四", DayInChinese: "初四",
			},
		},
		Lunar: map[int]oracle.LunarDate{
			2025: {Year: 2025, YearShengXiao: "蛇"},
		},
	}
}

func TestDeriveFacts_FullRecord(t *testing.T) {
	birth := &engine.SolarDate{Year: 1990, Month: 6, Day: 15}
	subject := engine.Subject{
		Gender:    "male",
		BirthDate: birth,
		Time:      engine.BranchTime("wu"),
	}
	today := engine.SolarDate{Year: 2025, Month: 5, Day: 1}

	facts := engine.DeriveFacts(fixtureOracle(), subject, today)

	assert.Equal(t, "庚午年（79年）", facts.LunarYear, "ganzhi with Republic year 1990-1911")
	assert.Equal(t, "五月二十三日", facts.LunarBirthday)
	assert.Equal(t, "馬", facts.Zodiac, "simplified oracle output must be normalized")
	assert.Equal(t, "午時", facts.TimeBranch)
	assert.Equal(t, "左手", facts.Handedness)
	assert.True(t, facts.AgeKnown)
	assert.Equal(t, 36, facts.Age, "2025 - 1990 + 1")
	assert.Equal(t, "虛歲 = 2025 - 1990 + 1 = 36", facts.AgeSummary)
}

func TestDeriveFacts_LeapMonth(t *testing.T) {
	birth := &engine.SolarDate{Year: 2024, Month: 7, Day: 30}
	subject := engine.Subject{
		Gender:    "female",
		BirthDate: birth,
		Time:      engine.UnknownTime(),
	}
	today := engine.SolarDate{Year: 2025, Month: 5, Day: 1}

	facts := engine.DeriveFacts(fixtureOracle(), subject, today)

	assert.Equal(t, "閏六月十日", facts.LunarBirthday, "negative oracle month carries the leap prefix")
	assert.Equal(t, "龍", facts.Zodiac)
	assert.Equal(t, "右手", facts.Handedness)
	assert.Equal(t, "吉時", facts.TimeBranch)
	assert.Equal(t, 2, facts.Age)
}

func TestDeriveFacts_MissingBirthDate(t *testing.T) {
	subject := engine.Subject{
		Gender: "",
		Time:   engine.UnknownTime(),
	}
	today := engine.SolarDate{Year: 2025, Month: 5, Day: 1}

	facts := engine.DeriveFacts(fixtureOracle(), subject, today)

	assert.Equal(t, "--", facts.LunarYear)
	assert.Equal(t, "--", facts.LunarBirthday)
	assert.Equal(t, "--", facts.Zodiac)
	assert.Equal(t, "--", facts.Handedness)
	assert.False(t, facts.AgeKnown)
	assert.Empty(t, facts.AgeSummary)
	// The time branch never depends on the birth date.
	assert.Equal(t, "吉時", facts.TimeBranch)
}

func TestDeriveFacts_OracleFailure(t *testing.T) {
	// Only the oracle-backed fields degrade; the rest still compute.
	broken := &oracle.Fixed{Err: errors.New("calendar backend down")}
	birth := &engine.SolarDate{Year: 1990, Month: 6, Day: 15}
	subject := engine.Subject{
		Gender:    "male",
		BirthDate: birth,
		Time:      engine.ClockTime("13:30"),
	}
	today := engine.SolarDate{Year: 2025, Month: 5, Day: 1}

	facts := engine.DeriveFacts(broken, subject, today)

	assert.Equal(t, "推算失敗", facts.LunarYear)
	assert.Equal(t, "推算失敗", facts.LunarBirthday)
	assert.Equal(t, "推算失敗", facts.Zodiac)
	assert.Equal(t, "未時", facts.TimeBranch)
	assert.Equal(t, "左手", facts.Handedness)
	assert.True(t, facts.AgeKnown)
	assert.Equal(t, 36, facts.Age)
}

func TestDeriveFacts_DayNumerals(t *testing.T) {
	// The day numeral has four regimes: units, teens, twenties, thirty.
	tests := []struct {
		day      int
		expected string
	}{
		{1, "五月一日"},
		{9, "五月九日"},
		{10, "五月十日"},
		{11, "五月十一日"},
		{19, "五月十九日"},
		{20, "五月二十日"},
		{21, "五月二十一日"},
		{29, "五月二十九日"},
		{30, "五月三十日"},
	}

	today := engine.SolarDate{Year: 2025, Month: 5, Day: 1}
	for _, tt := range tests {
		o := &oracle.Fixed{
			Solar: map[[3]int]oracle.LunarDate{
				{1990, 6, 15}: {Year: 1990, Month: 5, Day: tt.day, YearGanZhi: "庚午", YearShengXiao: "馬"},
			},
		}
		birth := &engine.SolarDate{Year: 1990, Month: 6, Day: 15}
		facts := engine.DeriveFacts(o, engine.Subject{BirthDate: birth, Time: engine.UnknownTime()}, today)
		assert.Equal(t, tt.expected, facts.LunarBirthday, "day %d", tt.day)
	}
}

func TestComposeToday(t *testing.T) {
	today := engine.SolarDate{Year: 2025, Month: 5, Day: 1}
	facts := engine.ComposeToday(fixtureOracle(), today)

	assert.Equal(t, today, facts.Date)
	assert.Equal(t, "四月初四", facts.LunarMD)
	assert.Equal(t, "乙巳年", facts.GanZhiYear)
	assert.Equal(t, 114, facts.RocYear, "2025 - 1911")
	assert.Equal(t, "屬蛇", facts.LunarZodiac)
}

func TestComposeToday_OracleFailure(t *testing.T) {
	broken := &oracle.Fixed{Err: errors.New("backend down")}
	today := engine.SolarDate{Year: 2025, Month: 5, Day: 1}
	facts := engine.ComposeToday(broken, today)

	assert.Equal(t, "推算失敗", facts.LunarMD)
	assert.Equal(t, "推算失敗", facts.GanZhiYear)
	assert.Equal(t, "推算失敗", facts.LunarZodiac)
	assert.Equal(t, 114, facts.RocYear, "pure arithmetic still computes")
}
