package engine

import "time"

// EffectiveToday computes the calendar day in force right now.
//
// The ritual day-change in the source tradition happens at a fixed
// late-evening hour, not midnight: once the local clock reaches
// boundaryHour, every "today" calendrical fact already belongs to the next
// calendar day. The instant is projected into tz before the boundary test.
func EffectiveToday(clock Clock, boundaryHour int, tz string) SolarDate {
	loc := loadLocation(tz)
	now := clock.Now().In(loc)

	y, m, d := now.Date()
	if now.Hour() >= boundaryHour {
		// time.Date normalizes day+1 across month and year boundaries.
		y, m, d = time.Date(y, m, d+1, 0, 0, 0, 0, loc).Date()
	}

	return SolarDate{Year: y, Month: int(m), Day: d}
}
