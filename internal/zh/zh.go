// Package zh normalizes the calendar oracle's output into canonical
// traditional-Chinese form. The oracle is known to emit a handful of
// simplified characters and historical month/day aliases; every
// human-readable label passes through Normalize before display.
package zh

import "strings"

// replacement is an ordered from→to substitution pair.
type replacement struct {
	from string
	to   string
}

// baseReplacements covers the simplified characters the oracle emits.
var baseReplacements = []replacement{
	{"鸡", "雞"},
	{"马", "馬"},
	{"龙", "龍"},
	{"猪", "豬"},
	{"阴", "陰"},
	{"阳", "陽"},
}

// monthAliases rewrites historical lunar month names to numeric months.
// Runs after baseReplacements so the alias text is already traditional.
var monthAliases = []replacement{
	{"腊月", "十二月"},
	{"臘月", "十二月"},
	{"冬月", "十一月"},
}

// dayAliases expands compact day numerals.
var dayAliases = []replacement{
	{"廿", "二十"},
	{"卅", "三十"},
}

func applyAll(text string, replacements []replacement) string {
	for _, r := range replacements {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return text
}

// Normalize applies the substitution passes in order. It is idempotent:
// no pass produces text a later (or earlier) pass would rewrite again.
func Normalize(text string) string {
	text = applyAll(text, baseReplacements)
	text = applyAll(text, monthAliases)
	text = applyAll(text, dayAliases)
	return text
}
