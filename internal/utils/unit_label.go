package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// unitTypeCodes maps the well-known unit categories to their short codes.
// Unrecognized types fall back to the first character, uppercased.
var unitTypeCodes = map[string]string{
	"bedsitter":   "B",
	"studio":      "S",
	"single room": "SR",
	"double room": "DR",
	"1 bedroom":   "1B",
	"2 bedroom":   "2B",
	"3 bedroom":   "3B",
	"condominium": "C",
	"loft":        "L",
	"other":       "O",
}

// DeriveUnitLabel produces the short human-readable code for a unit,
// e.g. ("Ground", "Bedsitter", 0) -> "GB1", ("3", "Studio", 0) -> "3FS1".
// index is zero-based among units of the same type on the same floor;
// uniqueness of the index is the caller's responsibility.
//
// Deterministic and side-effect free. An empty floor name yields an empty
// floor code; callers validate floor labels before generating units.
func DeriveUnitLabel(floorName, unitType string, index int) string {
	return floorCode(floorName) + typeCode(unitType) + strconv.Itoa(index+1)
}

func floorCode(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "ground"):
		return "G"
	case strings.HasPrefix(lower, "first"):
		return "F"
	}
	if n := leadingNumber(trimmed); n != "" {
		return n + "F"
	}
	return strings.ToUpper(trimmed[:1])
}

func typeCode(unitType string) string {
	trimmed := strings.TrimSpace(unitType)
	if trimmed == "" {
		return ""
	}
	if code, ok := unitTypeCodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	return strings.ToUpper(trimmed[:1])
}

func leadingNumber(s string) string {
	end := 0
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	return s[:end]
}
