// Package export renders the committed birth record as an iCalendar feed
// and seeds records from vCard files. Lunar derivation stays in engine;
// this package only lays the solar anniversary onto the Gregorian grid.
package export

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-shuwen/internal/config"
	"github.com/tartampluch/go-shuwen/internal/engine"
	"github.com/tartampluch/go-shuwen/internal/form"
)

// Builder converts a birth record plus its derived facts into ICS data.
type Builder struct {
	Clock engine.Clock

	// FormatSummary allows the presentation layer to inject a localized
	// event title. Receives the lunar birthday label and the nominal age
	// for the event year.
	FormatSummary func(label string, age int) string
}

// BuildCalendar generates a VCALENDAR with one event per solar anniversary
// for the previous, current, and next year. Years before birth are skipped.
// A record without a parseable birth date yields the stub calendar.
func (b *Builder) BuildCalendar(rec form.BirthRecord, facts engine.DerivedFacts) ([]byte, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompExport)

	subject := rec.Subject()
	if subject.BirthDate == nil {
		log.Debug(config.MsgCalendarStub)
		return []byte(config.StubVCalendar), nil
	}
	birth := *subject.BirthDate

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Event dates follow the local calendar; only the stamp is UTC.
	now := b.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	// Deterministic UID base so feed refreshes never duplicate events.
	input := fmt.Sprintf(config.FormatHashInput, facts.LunarBirthday, birth.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	for _, y := range targetYears {
		if y < birth.Year {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		// Nominal age counts the birth year as year one.
		age := y - birth.Year + 1
		summary := fmt.Sprintf(config.FallbackSummary, facts.LunarBirthday)
		if b.FormatSummary != nil {
			summary = b.FormatSummary(facts.LunarBirthday, age)
		}
		event.Props.SetText(config.PropSummary, summary)

		// time.Date normalizes Feb 29 to March 1st in non-leap years.
		eventDate := time.Date(y, time.Month(birth.Month), birth.Day, 0, 0, 0, 0, loc)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		log.Debug(config.MsgCalendarStub)
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	log.Debug(config.MsgCalendarBuilt,
		config.LogKeyCount, len(cal.Children),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ImportVCard scans a vCard stream and returns the birth date of the first
// card carrying a parseable BDAY, formatted as YYYY-MM-DD. Cards that fail
// to decode are skipped so one bad entry cannot sink the whole file.
func ImportVCard(r io.Reader) (string, error) {
	decoder := vcard.NewDecoder(r)

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyError, err,
			)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		date, err := parseBDAY(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyValue, bday.Value,
			)
			continue
		}

		// Name strategy: FN (formatted) > N (structured), log-only.
		name := ""
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}
		slog.Info(config.MsgVCardImported,
			config.LogKeyComponent, config.CompExport,
			config.LogKeyName, name,
			config.LogKeyDate, date,
		)
		return date, nil
	}

	return "", errors.New(config.ErrVCardNoBDAY)
}

// parseBDAY handles the vCard date layouts that carry a full year. Truncated
// no-year forms are rejected: a birth record needs the year for the lunar
// conversion.
func parseBDAY(value string) (string, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t.Format(config.DateFormatFullDash), nil
		}
	}
	return "", errors.New(config.ErrDateParse)
}
