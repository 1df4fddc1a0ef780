package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Shuwen"
	AppID             = "com.github.tartampluch.go-shuwen"
	KeyringService    = "com.github.tartampluch.go-shuwen"
	KeyringAccount    = "birth-record"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	StorageFileName   = "record.json"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files: logs and the persisted birth record.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion       = "version"
	FlagDebug         = "debug"
	FlagConfig        = "config"
	FlagImportVCF     = "import-vcf"
	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescConfig    = "Path to the YAML configuration file"
	FlagDescImportVCF = "Seed the birth record from the first BDAY in a .vcf file"
	MsgVersionOutput  = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	// DefaultBoundaryHour is the local hour at which the ritual calendar day
	// rolls over. The tradition changes day at 23:00, not midnight.
	DefaultBoundaryHour = 23

	// DefaultTimezone anchors every calendrical computation.
	DefaultTimezone = "Asia/Taipei"

	// RepublicEpochYear converts a lunar year to the Republic-calendar year.
	RepublicEpochYear = 1911

	DefaultPort     = "18089"
	DefaultLanguage = "zh-TW"

	// DefaultSubmitDelay is the debounced loading-indicator delay used by the
	// HTTP layer when committing a record.
	DefaultSubmitDelay = 250 * time.Millisecond
)

// -----------------------------------------------------------------------------
// Storage Backends
// -----------------------------------------------------------------------------

const (
	StoreModeKeyring = "keyring"
	StoreModeFile    = "file"
	StoreModeMemory  = "memory"
	DefaultStoreMode = StoreModeKeyring
)

// -----------------------------------------------------------------------------
// Birth Record Fields & Codes
// -----------------------------------------------------------------------------

// Record field keys accepted by the reconciliation engine's ApplyEdit.
const (
	FieldGender     = "gender"
	FieldBirthDate  = "birthDate"
	FieldBirthMode  = "birthMode"
	FieldTimeMode   = "timeMode"
	FieldTimeBranch = "timeBranch"
	FieldTimeExact  = "timeExact"
)

// Gender values.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderUnset  = ""
)

// Time-indicator discriminator values.
const (
	TimeModeUnknown = "unknown"
	TimeModeBranch  = "branch"
	TimeModeExact   = "exact"
)

// Birth-mode values. Lunar entry is a reserved extension point: it is parsed
// and round-tripped but drives no derivation yet.
const (
	BirthModeSolar = "solar"
	BirthModeLunar = "lunar"
)

// -----------------------------------------------------------------------------
// Shareable-Link Parameters
// -----------------------------------------------------------------------------

// Short query keys used by the shareable-link representation.
const (
	URLKeyGender     = "g"
	URLKeyBirth      = "b"
	URLKeyBirthMode  = "bm"
	URLKeyTimeMode   = "tm"
	URLKeyTimeBranch = "br"
	URLKeyTimeExact  = "t"
)

// Short codes carried by the link parameters.
const (
	CodeGenderMale      = "m"
	CodeGenderFemale    = "f"
	CodeTimeModeUnknown = "u"
	CodeTimeModeBranch  = "br"
	CodeTimeModeExact   = "ex"
	CodeBirthModeSolar  = "s"
	CodeBirthModeLunar  = "l"
)

// -----------------------------------------------------------------------------
// Display Labels (Traditional Chinese)
// -----------------------------------------------------------------------------

const (
	// LabelUnavailable marks a fact that cannot be derived because a required
	// input (birth date, gender) is missing. Not an error.
	LabelUnavailable = "--"

	// LabelDerivationFailed marks a fact the calendar oracle failed to
	// compute. Only the affected field carries it.
	LabelDerivationFailed = "推算失敗"

	// LabelAuspiciousHour is shown when the birth time is unknown.
	LabelAuspiciousHour = "吉時"

	// LabelUnknownTime is the recovery label for malformed branch/clock input.
	LabelUnknownTime = "未知"

	// The zi double-hour spans midnight; tradition names its halves apart.
	LabelLateZi  = "夜子時"
	LabelEarlyZi = "早子時"

	LabelLeftHand  = "左手"
	LabelRightHand = "右手"

	SuffixHourGlyph  = "時"
	SuffixMonthGlyph = "月"
	SuffixDayGlyph   = "日"
	SuffixYearGlyph  = "年"
	PrefixLeapMonth  = "閏"
	PrefixZodiac     = "屬"

	// FormatLunarYearLabel renders "{ganzhi}年（{roc}年）".
	FormatLunarYearLabel = "%s年（%d年）"

	// FormatAgeSummary renders the nominal-age arithmetic for display.
	FormatAgeSummary = "虛歲 = %d - %d + 1 = %d"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// DateFormatFullDash is the canonical solar birth date layout.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	MinPort = 1
	MaxPort = 65535

	// UID Generation for ICS events
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
	UIDSalt         = "go-shuwen-v1-"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Shuwen//Engine//EN"
	ICalCalName = "Lunar Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goshuwen"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour

	// FallbackSummary is used when no localized formatter is injected.
	FallbackSummary = "農曆生日：%s"

	// StubVCalendar is the minimal valid iCalendar object served before the
	// first record commit.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Routes
// -----------------------------------------------------------------------------

const (
	RouteFacts    = "/api/v1/facts"
	RouteToday    = "/api/v1/today"
	RouteBranches = "/api/v1/branches"
	RouteShare    = "/api/v1/share"
	RouteRecord   = "/api/v1/record"
	RouteCalendar = "/calendar.ics"

	ParamIncludeBirth = "include_birth"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrDateParse      = "unable to parse date"
	ErrDateRoundTrip  = "date does not survive the timezone round trip"
	ErrTimezoneLoad   = "failed to load timezone, falling back to default"
	ErrOracleSolar    = "calendar oracle failed on solar date"
	ErrOracleLunar    = "calendar oracle failed on lunar date"
	ErrStoreRead      = "failed to read persisted record"
	ErrStoreWrite     = "failed to persist record, continuing in memory"
	ErrStoreDelete    = "failed to delete persisted record"
	ErrStoreCorrupt   = "persisted record is corrupt, treating as absent"
	ErrStoreUnknown   = "unknown storage backend"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardNoBDAY    = "no parseable BDAY found in vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrConfigRead     = "failed to read configuration file"
	ErrConfigParse    = "failed to parse configuration file"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrEncodeResp     = "failed to encode response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgBadRequest   = "Bad Request"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgRecordLoaded   = "Persisted record loaded"
	MsgStoreSelected  = "Storage backend selected"
	MsgRecordSaved    = "Record persisted"
	MsgRecordReset    = "Record reset to defaults"
	MsgRecordEdited   = "Record field edited"
	MsgLinkApplied    = "Shareable-link parameters applied"
	MsgStoredApplied  = "Persisted record applied"
	MsgVCardImported  = "Birth date imported from vCard"
	MsgSkippedCard    = "Skipping unreadable vCard"
	MsgSkippedDate    = "Skipping unparseable BDAY value"
	MsgCalendarStub   = "No birth date committed, serving stub calendar"
	MsgCalendarBuilt  = "Calendar generated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSubmitReplaced = "Pending submission replaced"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyErrGenderRequired = "err_gender_required"
	TKeyErrBirthRequired  = "err_birth_required"
	TKeyErrBirthInvalid   = "err_birth_invalid"
	TKeyErrBranchRequired = "err_branch_required"
	TKeyErrTimeRequired   = "err_time_required"
	TKeyErrTimeInvalid    = "err_time_invalid"
	TKeyErrURLInvalid     = "err_url_invalid"

	TKeyHintHandGeneric = "hint_hand_generic"
	TKeyHintHandMale    = "hint_hand_male"
	TKeyHintHandFemale  = "hint_hand_female"
	TKeyHintNeedTime    = "hint_need_time"

	TKeyEvtSummary = "event_summary" // Requires lunar birthday label + age
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyValue     = "value"
	LogKeyField     = "field"
	LogKeyTimezone  = "timezone"
	LogKeyDate      = "date"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyStore     = "store"
	LogKeyDuration  = "duration_ms"
	LogKeyCount     = "count"
	LogKeyName      = "name"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine = "engine"
	CompOracle = "oracle"
	CompForm   = "form"
	CompStore  = "store"
	CompServer = "server"
	CompExport = "export"
	CompI18n   = "i18n"
	CompMain   = "main"
)
