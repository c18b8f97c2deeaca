package coercer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TypeCoercer turns raw cell values into dates and labels with a fixed,
// ordered set of rules so the same input always yields the same output.
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	DateLayouts []string       `json:"date_layouts"` // tried in order; first match wins
	Location    *time.Location `json:"-"`            // applied to layouts without a zone
}

// DefaultDateLayouts covers the formats seen in civic open-data exports:
// ISO 8601 variants (with colon-less offsets or a zone name), US
// month/day/year with 12h or 24h clocks, spelled-out months, Excel's default
// m/d/yy display, RFC 1123 style stamps and bare year-month / year values.
// Fractional seconds are accepted after any seconds field.
var DefaultDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05-07",
	"2006-01-02T15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006.01.02 15:04:05",
	"2006.01.02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 pm",
	"1/2/2006 3:04 pm",
	"1/2/2006 3:04:05PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1-2-2006",
	"1/2/06 15:04",
	"1/2/06",
	"1-2-06",
	"02-Jan-2006",
	"2-Jan-2006 15:04:05",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006 3:04:05 pm",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"20060102",
	"2006-01",
	"2006",
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		DateLayouts: DefaultDateLayouts,
		Location:    time.UTC,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	if len(config.DateLayouts) == 0 {
		config.DateLayouts = DefaultDateLayouts
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &TypeCoercer{config: config}
}

// CoerceTimestamp parses a raw value into a calendar date and time.
// Typed time values pass through; strings and numbers are matched against
// the configured layouts. ok is false for missing or unparseable values.
func (c *TypeCoercer) CoerceTimestamp(rawValue interface{}) (time.Time, bool) {
	switch v := rawValue.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case bool:
		return time.Time{}, false
	}

	return c.tryParseTimestamp(c.ToString(rawValue))
}

// CoerceText returns the trimmed string form of a raw value; ok is false when it is blank.
func (c *TypeCoercer) CoerceText(rawValue interface{}) (string, bool) {
	s := c.ToString(rawValue)
	return s, s != ""
}

// tryParseTimestamp attempts to parse as timestamp with multiple formats
func (c *TypeCoercer) tryParseTimestamp(strVal string) (time.Time, bool) {
	if strVal == "" {
		return time.Time{}, false
	}

	for _, layout := range c.config.DateLayouts {
		if t, err := time.ParseInLocation(layout, strVal, c.config.Location); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ToString converts a raw value to its trimmed string form
func (c *TypeCoercer) ToString(val interface{}) string {
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
