package form

import (
	"net/url"

	"github.com/tartampluch/go-shuwen/internal/config"
	"github.com/tartampluch/go-shuwen/internal/engine"
)

// linkField is one recognized shareable-link parameter mapped onto a record
// field edit. Decoding is field-by-field: a malformed value falls back to
// the default for that field only, never rejecting the whole link.
type linkField struct {
	key   string
	value string
}

// decodeLink extracts the recognized, non-empty fields of a shareable link
// in record-edit order (discriminator before payloads, so the mutual
// exclusion rules land correctly when replayed through ApplyEdit).
func decodeLink(q url.Values) []linkField {
	var fields []linkField

	switch q.Get(config.URLKeyGender) {
	case config.CodeGenderMale:
		fields = append(fields, linkField{config.FieldGender, config.GenderMale})
	case config.CodeGenderFemale:
		fields = append(fields, linkField{config.FieldGender, config.GenderFemale})
	}

	switch q.Get(config.URLKeyBirthMode) {
	case config.CodeBirthModeSolar:
		fields = append(fields, linkField{config.FieldBirthMode, config.BirthModeSolar})
	case config.CodeBirthModeLunar:
		fields = append(fields, linkField{config.FieldBirthMode, config.BirthModeLunar})
	}

	if b := q.Get(config.URLKeyBirth); b != "" {
		fields = append(fields, linkField{config.FieldBirthDate, b})
	}

	switch q.Get(config.URLKeyTimeMode) {
	case config.CodeTimeModeUnknown:
		fields = append(fields, linkField{config.FieldTimeMode, config.TimeModeUnknown})
	case config.CodeTimeModeBranch:
		fields = append(fields, linkField{config.FieldTimeMode, config.TimeModeBranch})
	case config.CodeTimeModeExact:
		fields = append(fields, linkField{config.FieldTimeMode, config.TimeModeExact})
	}

	if br := q.Get(config.URLKeyTimeBranch); br != "" {
		fields = append(fields, linkField{config.FieldTimeBranch, br})
	}
	if t := q.Get(config.URLKeyTimeExact); t != "" {
		fields = append(fields, linkField{config.FieldTimeExact, t})
	}

	return fields
}

// Initialize builds the initial record. A link carrying at least one
// recognized, non-empty field wins outright and storage is ignored; an
// empty or no-op link must not erase prior local progress, so the stored
// record (when present) overlays the defaults instead.
func Initialize(link url.Values, stored *BirthRecord, defaults BirthRecord) BirthRecord {
	if fields := decodeLink(link); len(fields) > 0 {
		rec := defaults
		for _, f := range fields {
			rec = ApplyEdit(rec, f.key, f.value)
		}
		return rec
	}
	if stored != nil {
		return *stored
	}
	return defaults
}

// ApplyEdit sets one field on a copy of prev and returns it.
//
// Editing the time-mode discriminator re-applies the mutual exclusion
// invariant: the payloads of the two inactive variants are cleared by
// constructing the indicator fresh. Payload edits apply only while their
// variant is active; any other edit leaves unrelated fields untouched.
// Malformed values recover to the field's unset state.
func ApplyEdit(prev BirthRecord, key, value string) BirthRecord {
	rec := prev
	switch key {
	case config.FieldGender:
		switch value {
		case config.GenderMale, config.GenderFemale:
			rec.Gender = value
		default:
			rec.Gender = config.GenderUnset
		}

	case config.FieldBirthMode:
		switch value {
		case config.BirthModeSolar, config.BirthModeLunar:
			rec.BirthMode = value
		default:
			rec.BirthMode = config.BirthModeSolar
		}

	case config.FieldBirthDate:
		if _, err := engine.ParseBirthDate(value, rec.Timezone); err != nil {
			rec.BirthDate = ""
		} else {
			rec.BirthDate = value
		}

	case config.FieldTimeMode:
		switch value {
		case config.TimeModeBranch:
			rec.Time = engine.BranchTime(prev.Time.Branch)
		case config.TimeModeExact:
			rec.Time = engine.ClockTime(prev.Time.Clock)
		default:
			rec.Time = engine.UnknownTime()
		}

	case config.FieldTimeBranch:
		if rec.Time.Kind == config.TimeModeBranch {
			rec.Time = engine.BranchTime(value)
		}

	case config.FieldTimeExact:
		if rec.Time.Kind == config.TimeModeExact {
			rec.Time = engine.ClockTime(value)
		}
	}
	return rec
}

// Serialize renders both persisted and shareable forms of a record.
//
// The storage form round-trips every field. The share form carries the
// gender code, the time-mode code and only the active variant's payload;
// the raw birth date is sensitive and included only when includeSensitive
// is set.
func Serialize(rec BirthRecord, includeSensitive bool) ([]byte, url.Values, error) {
	storage, err := rec.EncodeStorage()
	if err != nil {
		return nil, nil, err
	}

	share := url.Values{}
	switch rec.Gender {
	case config.GenderMale:
		share.Set(config.URLKeyGender, config.CodeGenderMale)
	case config.GenderFemale:
		share.Set(config.URLKeyGender, config.CodeGenderFemale)
	}

	switch rec.Time.Kind {
	case config.TimeModeBranch:
		share.Set(config.URLKeyTimeMode, config.CodeTimeModeBranch)
		if rec.Time.Branch != "" {
			share.Set(config.URLKeyTimeBranch, rec.Time.Branch)
		}
	case config.TimeModeExact:
		share.Set(config.URLKeyTimeMode, config.CodeTimeModeExact)
		if rec.Time.Clock != "" {
			share.Set(config.URLKeyTimeExact, rec.Time.Clock)
		}
	default:
		share.Set(config.URLKeyTimeMode, config.CodeTimeModeUnknown)
	}

	if includeSensitive && rec.BirthDate != "" {
		share.Set(config.URLKeyBirth, rec.BirthDate)
	}

	return storage, share, nil
}
