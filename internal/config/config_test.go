package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-shuwen/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or
// malformed. This prevents accidental deletion of keys required at runtime.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"KeyringService", config.KeyringService},
		{"KeyringAccount", config.KeyringAccount},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DefaultTimezone", config.DefaultTimezone},
		{"DefaultLanguage", config.DefaultLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	// The ritual calendar day rolls over at 23:00 local time.
	assert.Equal(t, 23, config.DefaultBoundaryHour)
	assert.Equal(t, 1911, config.RepublicEpochYear)
	assert.Greater(t, config.DefaultSubmitDelay, 0*time.Millisecond)

	// The timezone must resolve against the system database.
	_, err := time.LoadLocation(config.DefaultTimezone)
	assert.NoError(t, err, "DefaultTimezone must be a valid IANA name")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.ServerReadTimeout, 0*time.Second)
	assert.Greater(t, config.ServerWriteTimeout, 0*time.Second)
	assert.GreaterOrEqual(t, config.ServerIdleTimeout, config.ServerWriteTimeout,
		"Idle timeout should outlast a single response write")

	assert.GreaterOrEqual(t, config.MaxPort, config.MinPort)
}

// TestStubVCalendar_Validity guards the hand-rolled fallback feed: it must
// stay a minimal, well-formed iCalendar object.
func TestStubVCalendar_Validity(t *testing.T) {
	assert.Contains(t, config.StubVCalendar, "BEGIN:VCALENDAR")
	assert.Contains(t, config.StubVCalendar, "END:VCALENDAR")
	assert.Contains(t, config.StubVCalendar, config.ICalProdid)
}
