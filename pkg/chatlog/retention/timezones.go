package retention

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTimeZone is returned when a zone name is not in the table.
var ErrUnknownTimeZone = errors.New("unknown time zone")

// zoneOffsets maps zone abbreviations to fixed, whole-hour UTC offsets.
// Offsets never change with daylight saving; summer abbreviations have
// their own entries.
var zoneOffsets = map[string]int{
	// Universal
	"UTC": 0,
	"GMT": 0,
	"UT":  0,
	"Z":   0,

	// Europe
	"WET":  0,
	"WEST": 1,
	"BST":  1,
	"IST":  1,
	"CET":  1,
	"MET":  1,
	"CEST": 2,
	"MEST": 2,
	"EET":  2,
	"EEST": 3,
	"MSK":  3,
	"MSD":  4,

	// Africa
	"WAT":  1,
	"CAT":  2,
	"SAST": 2,
	"EAT":  3,

	// Asia
	"GST": 4,
	"PKT": 5,
	"ICT": 7,
	"WIB": 7,
	"SGT": 8,
	"HKT": 8,
	"PHT": 8,
	"JST": 9,
	"KST": 9,

	// Oceania
	"AWST": 8,
	"AEST": 10,
	"AEDT": 11,
	"NZST": 12,
	"NZDT": 13,

	// Americas
	"BRT":  -3,
	"ART":  -3,
	"ADT":  -3,
	"AST":  -4,
	"EDT":  -4,
	"EST":  -5,
	"CDT":  -5,
	"CST":  -6,
	"MDT":  -6,
	"MST":  -7,
	"PDT":  -7,
	"PST":  -8,
	"AKDT": -8,
	"AKST": -9,
	"HST":  -10,
}

// LookupOffset returns the UTC offset in hours for a zone abbreviation.
// The lookup is case-insensitive. Unknown zones return 0 with an error
// wrapping ErrUnknownTimeZone.
func LookupOffset(name string) (int, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	offset, ok := zoneOffsets[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTimeZone, name)
	}
	return offset, nil
}
