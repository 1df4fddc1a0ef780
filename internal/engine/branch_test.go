package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-shuwen/internal/engine"
)

func TestResolveBranch_Unknown(t *testing.T) {
	assert.Equal(t, "吉時", engine.ResolveBranch(engine.UnknownTime()))
}

func TestResolveBranch_ExplicitCodes(t *testing.T) {
	expected := map[string]string{
		"zi": "子時", "chou": "丑時", "yin": "寅時", "mao": "卯時",
		"chen": "辰時", "si": "巳時", "wu": "午時", "wei": "未時",
		"shen": "申時", "you": "酉時", "xu": "戌時", "hai": "亥時",
	}

	seen := make(map[string]bool)
	for code, label := range expected {
		got := engine.ResolveBranch(engine.BranchTime(code))
		assert.Equal(t, label, got, "branch %s", code)
		assert.False(t, seen[got], "labels must be distinct")
		seen[got] = true
	}
}

func TestResolveBranch_InvalidCode(t *testing.T) {
	for _, code := range []string{"", "zii", "rat", "ZI", "13"} {
		assert.Equal(t, "未知", engine.ResolveBranch(engine.BranchTime(code)), "code %q", code)
	}
}

func TestResolveBranch_ClockZiHalves(t *testing.T) {
	// The zi double-hour spans midnight: 23:xx is the late half, 00:xx the
	// early half, for every minute.
	for m := 0; m < 60; m++ {
		late := fmt.Sprintf("23:%02d", m)
		early := fmt.Sprintf("00:%02d", m)
		assert.Equal(t, "夜子時", engine.ResolveBranch(engine.ClockTime(late)), late)
		assert.Equal(t, "早子時", engine.ResolveBranch(engine.ClockTime(early)), early)
	}
}

func TestResolveBranch_ClockWindows(t *testing.T) {
	tests := []struct {
		clock string
		label string
	}{
		{"01:00", "丑時"},
		{"02:59", "丑時"},
		{"03:00", "寅時"},
		{"05:30", "卯時"},
		{"07:00", "辰時"},
		{"09:59", "巳時"},
		{"11:00", "午時"},
		{"12:59", "午時"},
		{"13:00", "未時"},
		{"15:45", "申時"},
		{"17:00", "酉時"},
		{"19:00", "戌時"},
		{"20:59", "戌時"},
		{"21:00", "亥時"},
		{"22:59", "亥時"},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			assert.Equal(t, tt.label, engine.ResolveBranch(engine.ClockTime(tt.clock)))
		})
	}
}

// TestClockBranch_Partition verifies the ten non-zi windows partition
// [01:00, 23:00) with no gaps or overlaps, minute by minute.
func TestClockBranch_Partition(t *testing.T) {
	counts := make(map[string]int)
	for total := 60; total < 23*60; total++ {
		code := engine.ClockBranch(total/60, total%60)
		assert.NotEqual(t, "zi", code, "minute %d must not fall in zi", total)
		counts[code]++
	}

	assert.Len(t, counts, 11, "chou through hai must all be hit")
	for code, n := range counts {
		assert.Equal(t, 120, n, "window %s must cover exactly 120 minutes", code)
	}
}

func TestClockBranch_ZiWraparound(t *testing.T) {
	assert.Equal(t, "zi", engine.ClockBranch(23, 0))
	assert.Equal(t, "zi", engine.ClockBranch(23, 59))
	assert.Equal(t, "zi", engine.ClockBranch(0, 0))
	assert.Equal(t, "zi", engine.ClockBranch(0, 59))
	assert.Equal(t, "chou", engine.ClockBranch(1, 0))
}

func TestResolveBranch_MalformedClock(t *testing.T) {
	for _, v := range []string{"", "9:00", "24:00", "12:60", "ab:cd", "12-30", "123:45"} {
		assert.Equal(t, "未知", engine.ResolveBranch(engine.ClockTime(v)), "clock %q", v)
	}
}

func TestParseClock(t *testing.T) {
	h, m, ok := engine.ParseClock("09:30")
	assert.True(t, ok)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	_, _, ok = engine.ParseClock("25:00")
	assert.False(t, ok)
}

func TestBranches_Integrity(t *testing.T) {
	assert.Len(t, engine.Branches, 12)
	for _, b := range engine.Branches {
		assert.True(t, engine.ValidBranch(b.Code))
		assert.Equal(t, b.Glyph+"時", b.Label)
		assert.NotEmpty(t, b.Range)
	}
	assert.False(t, engine.ValidBranch("nope"))
}
