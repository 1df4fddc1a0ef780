package zh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-shuwen/internal/zh"
)

func TestNormalize_TableDriven(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty string", "", ""},
		{"Already traditional", "丙寅年", "丙寅年"},
		{"Simplified zodiac rooster", "鸡", "雞"},
		{"Simplified zodiac horse", "属马", "属馬"},
		{"Simplified dragon and pig", "龙猪", "龍豬"},
		{"Yin yang pair", "阴阳", "陰陽"},
		{"Twelfth month simplified alias", "腊月", "十二月"},
		{"Twelfth month traditional alias", "臘月", "十二月"},
		{"Eleventh month alias", "冬月", "十一月"},
		{"Compact twenty", "廿五", "二十五"},
		{"Compact thirty", "卅", "三十"},
		{"Mixed sentence", "腊月廿三", "十二月二十三"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, zh.Normalize(tt.input))
		})
	}
}

// TestNormalize_Idempotent verifies that a second pass never changes the text.
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"腊月廿三",
		"臘月卅",
		"鸡马龙猪阴阳",
		"冬月十一",
		"正月初一",
		"二十五",
	}

	for _, in := range inputs {
		once := zh.Normalize(in)
		twice := zh.Normalize(once)
		assert.Equal(t, once, twice, "Normalize must be idempotent for %q", in)
	}
}

func TestNormalize_MonthAliasesConverge(t *testing.T) {
	// Both historical spellings of the twelfth month land on the same name.
	assert.Equal(t, zh.Normalize("腊月"), zh.Normalize("臘月"))
	assert.Equal(t, "十二月", zh.Normalize("腊月"))
}
