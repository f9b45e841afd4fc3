package domain

import "strings"

// prohibitedCodes lists MSIC codes whose whole group is barred from B2C consolidation by
// LHDN policy, regardless of any table entry.
var prohibitedCodes = map[string]string{
	// Electric power generation, transmission and distribution
	"35101": "electricity",
	"35102": "electricity",
	"35103": "electricity",
	// Water collection, treatment and supply
	"36000": "water supply",
	// Sewerage
	"37000": "sewerage",
	// Telecommunications
	"61101": "telecommunications",
	"61102": "telecommunications",
	"61201": "telecommunications",
	"61202": "telecommunications",
	"61300": "telecommunications",
	"61901": "telecommunications",
	"61902": "telecommunications",
	"61909": "telecommunications",
	// Parking and toll operations
	"52211": "parking and toll operations",
	"52212": "parking and toll operations",
	// Public administration
	"84111": "public administration",
	"84112": "public administration",
	"84121": "public administration",
	"84122": "public administration",
	"84130": "public administration",
}

// IsProhibited reports whether code belongs to a group barred from consolidation.
func IsProhibited(code string) bool {
	_, ok := prohibitedCodes[strings.TrimSpace(code)]
	return ok
}

// ProhibitedGroup names the barred group for code, or "" when it is not prohibited.
func ProhibitedGroup(code string) string {
	return prohibitedCodes[strings.TrimSpace(code)]
}

// ProhibitedCodes returns the prohibited list in no particular order.
func ProhibitedCodes() []string {
	out := make([]string, 0, len(prohibitedCodes))
	for code := range prohibitedCodes {
		out = append(out, code)
	}
	return out
}
