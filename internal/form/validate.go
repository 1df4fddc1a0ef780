package form

import (
	"github.com/tartampluch/go-shuwen/internal/config"
	"github.com/tartampluch/go-shuwen/internal/engine"
)

// Validate reports the message IDs blocking a submission. Missing required
// fields are a pending state, not an error; the presentation layer decides
// how to surface them.
func Validate(rec BirthRecord) []string {
	var ids []string

	if rec.Gender == config.GenderUnset {
		ids = append(ids, config.TKeyErrGenderRequired)
	}

	if rec.BirthDate == "" {
		ids = append(ids, config.TKeyErrBirthRequired)
	} else if _, err := engine.ParseBirthDate(rec.BirthDate, rec.Timezone); err != nil {
		ids = append(ids, config.TKeyErrBirthInvalid)
	}

	switch rec.Time.Kind {
	case config.TimeModeBranch:
		if !engine.ValidBranch(rec.Time.Branch) {
			ids = append(ids, config.TKeyErrBranchRequired)
		}
	case config.TimeModeExact:
		if rec.Time.Clock == "" {
			ids = append(ids, config.TKeyErrTimeRequired)
		} else if _, _, ok := engine.ParseClock(rec.Time.Clock); !ok {
			ids = append(ids, config.TKeyErrTimeInvalid)
		}
	}

	return ids
}
