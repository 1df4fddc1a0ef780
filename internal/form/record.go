// Package form owns the birth record and its reconciliation across the
// three input sources: shareable-link parameters, persisted storage, and
// live edits. The engine consumes committed records; it never mutates them.
package form

import (
	"encoding/json"
	"log/slog"

	"github.com/tartampluch/go-shuwen/internal/config"
	"github.com/tartampluch/go-shuwen/internal/engine"
)

// BirthRecord is the canonical working record.
type BirthRecord struct {
	Gender    string               `json:"gender,omitempty"`
	BirthMode string               `json:"birthMode"`
	BirthDate string               `json:"birthDate,omitempty"` // YYYY-MM-DD, empty = unset
	Time      engine.TimeIndicator `json:"time"`
	Timezone  string               `json:"tz"`
}

// Defaults returns the empty record every session starts from.
func Defaults() BirthRecord {
	return BirthRecord{
		Gender:    config.GenderUnset,
		BirthMode: config.BirthModeSolar,
		Time:      engine.UnknownTime(),
		Timezone:  config.DefaultTimezone,
	}
}

// Subject projects the record into the engine's derivation inputs.
// An unset or unparseable birth date becomes a nil date, never an error:
// derivation degrades to the unavailable sentinel.
func (r BirthRecord) Subject() engine.Subject {
	s := engine.Subject{
		Gender: r.Gender,
		Time:   r.Time,
	}
	if r.BirthDate == "" {
		return s
	}
	d, err := engine.ParseBirthDate(r.BirthDate, r.Timezone)
	if err != nil {
		return s
	}
	s.BirthDate = &d
	return s
}

// EncodeStorage renders the full round-trippable persisted form.
func (r BirthRecord) EncodeStorage() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeStorage parses a persisted blob. Malformed JSON is treated as "no
// stored record": recovered, logged softly, never fatal.
func DecodeStorage(data []byte) (BirthRecord, bool) {
	if len(data) == 0 {
		return BirthRecord{}, false
	}
	rec := Defaults()
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn(config.ErrStoreCorrupt,
			config.LogKeyComponent, config.CompForm,
			config.LogKeyError, err,
		)
		return BirthRecord{}, false
	}
	rec.normalize()
	return rec, true
}

// normalize repairs a decoded record field-by-field so a hand-edited or
// stale blob cannot smuggle in values an edit path would have rejected.
func (r *BirthRecord) normalize() {
	switch r.Gender {
	case config.GenderMale, config.GenderFemale:
	default:
		r.Gender = config.GenderUnset
	}
	switch r.BirthMode {
	case config.BirthModeSolar, config.BirthModeLunar:
	default:
		r.BirthMode = config.BirthModeSolar
	}
	if r.Timezone == "" {
		r.Timezone = config.DefaultTimezone
	}
	if r.BirthDate != "" {
		if _, err := engine.ParseBirthDate(r.BirthDate, r.Timezone); err != nil {
			r.BirthDate = ""
		}
	}
	switch r.Time.Kind {
	case config.TimeModeBranch:
		r.Time = engine.BranchTime(r.Time.Branch)
	case config.TimeModeExact:
		r.Time = engine.ClockTime(r.Time.Clock)
	default:
		r.Time = engine.UnknownTime()
	}
}
