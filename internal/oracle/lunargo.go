package oracle

import (
	"fmt"
	"log/slog"

	"github.com/6tail/lunar-go/calendar"
	"github.com/tartampluch/go-shuwen/internal/config"
)

// LunarGo adapts the lunar-go library to the Oracle port.
//
// lunar-go panics on out-of-range input instead of returning errors, so both
// conversions run behind a recover guard. A panic becomes an ordinary error
// and never crosses the engine boundary.
type LunarGo struct{}

// NewLunarGo returns the production oracle.
func NewLunarGo() *LunarGo {
	return &LunarGo{}
}

// FromSolar implements Oracle.
func (o *LunarGo) FromSolar(year, month, day int) (d LunarDate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s %04d-%02d-%02d: %v", config.ErrOracleSolar, year, month, day, r)
			slog.Warn(config.ErrOracleSolar,
				config.LogKeyComponent, config.CompOracle,
				config.LogKeyError, err,
			)
		}
	}()

	lunar := calendar.NewSolarFromYmd(year, month, day).GetLunar()
	return fromLib(lunar), nil
}

// FromLunar implements Oracle.
func (o *LunarGo) FromLunar(year, month, day int) (d LunarDate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s %d-%d-%d: %v", config.ErrOracleLunar, year, month, day, r)
			slog.Warn(config.ErrOracleLunar,
				config.LogKeyComponent, config.CompOracle,
				config.LogKeyError, err,
			)
		}
	}()

	lunar := calendar.NewLunarFromYmd(year, month, day)
	return fromLib(lunar), nil
}

func fromLib(lunar *calendar.Lunar) LunarDate {
	return LunarDate{
		Year:           lunar.GetYear(),
		Month:          lunar.GetMonth(),
		Day:            lunar.GetDay(),
		YearGanZhi:     lunar.GetYearInGanZhi(),
		YearShengXiao:  lunar.GetYearShengXiao(),
		MonthInChinese: lunar.GetMonthInChinese(),
		DayInChinese:   lunar.GetDayInChinese(),
	}
}
