package retention

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMaxAge is returned when a max age string cannot be parsed.
var ErrInvalidMaxAge = errors.New("invalid max age")

// MaxAgeLimitDays is the largest retention period accepted, in either
// direction. Larger counts are rejected as invalid.
const MaxAgeLimitDays = 1_000_000

// Days per max age unit suffix.
var unitDays = map[byte]int{
	'd': 1,
	'w': 7,
	'm': 30,
	'y': 365,
}

// Policy is the retention policy derived from one configuration load.
// It is an immutable value; reloads build a new one.
type Policy struct {
	// MaxAgeDays is the number of days to retain messages.
	// 0 means keep messages forever.
	MaxAgeDays int

	// LocalHour and LocalMinute are the clamped purge time in TimeZone.
	LocalHour   int
	LocalMinute int

	// TimeZone is the host zone name the local time was given in.
	TimeZone string

	// UTCOffset is the fixed offset of TimeZone in hours.
	UTCOffset int

	// TriggerHourUTC and TriggerMinuteUTC are when the daily purge fires.
	// Only meaningful when MaxAgeDays > 0.
	TriggerHourUTC   int
	TriggerMinuteUTC int
}

// Enabled reports whether the policy deletes anything.
func (p Policy) Enabled() bool {
	return p.MaxAgeDays > 0
}

// Spec returns the five-field cron expression for the daily trigger,
// evaluated in UTC.
func (p Policy) Spec() string {
	return fmt.Sprintf("%d %d * * *", p.TriggerMinuteUTC, p.TriggerHourUTC)
}

// String describes the policy for logs.
func (p Policy) String() string {
	if !p.Enabled() {
		return "chat log messages are kept forever"
	}
	return fmt.Sprintf("everyday at %02d:%02d %s, chat messages older than %d days will be deleted",
		p.LocalHour, p.LocalMinute, p.TimeZone, p.MaxAgeDays)
}

// ParseMaxAge converts a max age such as "2d", "1w", "6m", "1y" or "5"
// into a number of days.
//
// An empty string means 0 (keep forever). Unparseable input, or a count
// whose magnitude exceeds MaxAgeLimitDays, returns 0 and an error wrapping
// ErrInvalidMaxAge. Case and surrounding whitespace are ignored.
func ParseMaxAge(spec string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return 0, nil
	}

	factor := 1
	number := s
	if mult, ok := unitDays[s[len(s)-1]]; ok {
		factor = mult
		number = s[:len(s)-1]
	}

	n, err := strconv.Atoi(number)
	if err != nil {
		return 0, fmt.Errorf("%w: could not convert %q to a number of days", ErrInvalidMaxAge, spec)
	}

	if n > MaxAgeLimitDays/factor || n < -MaxAgeLimitDays/factor {
		return 0, fmt.Errorf("%w: %q exceeds %d days", ErrInvalidMaxAge, spec, MaxAgeLimitDays)
	}

	return n * factor, nil
}

// ClampDays enforces the one-day floor: any non-zero value below one
// becomes exactly one. Zero and values of at least one are unchanged.
func ClampDays(days int) int {
	if days != 0 && days < 1 {
		return 1
	}
	return days
}

// ClampHour clamps h to [0,23].
func ClampHour(h int) int {
	return clamp(h, 0, 23)
}

// ClampMinute clamps m to [0,59].
func ClampMinute(m int) int {
	return clamp(m, 0, 59)
}

// ToUTCHour converts a local hour in a zone with the given offset to the
// UTC hour, wrapping around midnight.
func ToUTCHour(localHour, offset int) int {
	return ((localHour-offset)%24 + 24) % 24
}

// ComputePolicy builds the policy for one configuration load.
//
// Configuration problems never fail the load: an invalid max age resolves
// to 0 (keep forever) and an unknown zone to a zero offset. Any such
// problem is returned as an error alongside the usable policy.
func ComputePolicy(maxAge string, localHour, localMinute int, zone string) (Policy, error) {
	var errs []error

	days, err := ParseMaxAge(maxAge)
	if err != nil {
		errs = append(errs, err)
	}

	p := Policy{
		MaxAgeDays:  ClampDays(days),
		LocalHour:   ClampHour(localHour),
		LocalMinute: ClampMinute(localMinute),
		TimeZone:    strings.ToUpper(strings.TrimSpace(zone)),
	}

	if p.Enabled() {
		offset, err := LookupOffset(zone)
		if err != nil {
			errs = append(errs, err)
		}
		p.UTCOffset = offset
		p.TriggerHourUTC = ToUTCHour(p.LocalHour, offset)
		p.TriggerMinuteUTC = p.LocalMinute
	}

	return p, errors.Join(errs...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
