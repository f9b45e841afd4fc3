// Package tin validates and classifies Malaysian Tax Identification Numbers.
//
// Four formats are recognised:
//   - corporate:  C followed by 10 digits (C1234567890)
//   - individual: 12 digits (123456789012)
//   - government: G followed by 10 digits (G1234567890)
//   - nonprofit:  N followed by 10 digits (N1234567890)
//
// Matching is case-insensitive and ignores any whitespace in the input.
package tin

import (
	"regexp"
	"strings"
	"unicode"
)

// Type classifies a TIN.
type Type string

const (
	TypeUnknown    Type = ""
	TypeCorporate  Type = "corporate"
	TypeIndividual Type = "individual"
	TypeGovernment Type = "government"
	TypeNonprofit  Type = "nonprofit"
)

const (
	ErrRequired      = "TIN is required"
	ErrInvalidFormat = "Invalid TIN format"

	WarnSequential  = "TIN digits form a sequential pattern; verify this is not test data"
	WarnLeadingZero = "TIN digits start with 000; verify this is not placeholder data"
)

const genericExample = "C1234567890 or 123456789012"

type format struct {
	typ         Type
	pattern     *regexp.Regexp
	prefix      string
	example     string
	description string
}

// formats are matched in order; the first match wins.
var formats = []format{
	{TypeCorporate, regexp.MustCompile(`^C\d{10}$`), "C", "C1234567890", "Corporate (Sdn Bhd, Bhd, LLP)"},
	{TypeIndividual, regexp.MustCompile(`^\d{12}$`), "", "123456789012", "Individual (MyKad-based)"},
	{TypeGovernment, regexp.MustCompile(`^G\d{10}$`), "G", "G1234567890", "Government agency"},
	{TypeNonprofit, regexp.MustCompile(`^N\d{10}$`), "N", "N1234567890", "Non-profit organisation"},
}

// Result is the outcome of Validate.
type Result struct {
	IsValid       bool     `json:"is_valid"`
	Type          Type     `json:"type,omitempty"`
	FormatExample string   `json:"format_example"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	// Diagnostic is best-effort guidance for an unmatched TIN. It is never counted as an error.
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Normalize strips whitespace and upper-cases the input.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Validate classifies raw as one of the four TIN formats.
func Validate(raw string) Result {
	res := Result{
		FormatExample: genericExample,
		Errors:        []string{},
		Warnings:      []string{},
	}

	value := Normalize(raw)
	if value == "" {
		res.Errors = append(res.Errors, ErrRequired)
		return res
	}

	f, ok := match(value)
	if !ok {
		res.Errors = append(res.Errors, ErrInvalidFormat)
		res.Diagnostic = diagnose(value)
		return res
	}

	res.IsValid = true
	res.Type = f.typ
	res.FormatExample = f.example

	digits := strings.TrimPrefix(value, f.prefix)
	if isSequential(digits) {
		res.Warnings = append(res.Warnings, WarnSequential)
	}
	if strings.HasPrefix(digits, "000") {
		res.Warnings = append(res.Warnings, WarnLeadingZero)
	}
	return res
}

// IsValid reports whether raw matches any TIN format.
func IsValid(raw string) bool {
	_, ok := match(Normalize(raw))
	return ok
}

// DescribeType returns a human readable label for t.
func DescribeType(t Type) string {
	for _, f := range formats {
		if f.typ == t {
			return f.description
		}
	}
	return "Unknown"
}

// FormatForDisplay groups the digits of a valid TIN with spaces.
// Invalid input is returned normalised but otherwise untouched.
func FormatForDisplay(raw string) string {
	value := Normalize(raw)
	f, ok := match(value)
	if !ok {
		return value
	}
	digits := strings.TrimPrefix(value, f.prefix)
	if f.typ == TypeIndividual {
		return digits[:4] + " " + digits[4:8] + " " + digits[8:]
	}
	return f.prefix + " " + digits[:5] + " " + digits[5:]
}

// SuggestFormats proposes up to three complete TINs that the partial input may be heading
// towards. Used for live form feedback.
func SuggestFormats(partial string) []string {
	value := Normalize(partial)
	if value == "" {
		return []string{"C1234567890", "123456789012", "G1234567890"}
	}

	suggestions := make([]string, 0, 3)
	add := func(s string) {
		if len(suggestions) >= 3 {
			return
		}
		for _, existing := range suggestions {
			if existing == s {
				return
			}
		}
		suggestions = append(suggestions, s)
	}

	first := value[0]
	digits := onlyDigits(value)
	switch {
	case first == 'C' || first == 'G' || first == 'N':
		add(string(first) + pad(digits, 10))
	case first >= '0' && first <= '9':
		add(pad(digits, 12))
		add("C" + pad(digits, 10))
		add("G" + pad(digits, 10))
	default:
		add("C" + pad(digits, 10))
		add(pad(digits, 12))
	}
	return suggestions
}

func match(value string) (format, bool) {
	for _, f := range formats {
		if f.pattern.MatchString(value) {
			return f, true
		}
	}
	return format{}, false
}

func diagnose(value string) string {
	runes := []rune(value)
	length := len(runes)
	first := runes[0]
	startsWithLetter := unicode.IsLetter(first)
	afterPrefix := length
	if startsWithLetter {
		afterPrefix--
	}

	switch {
	case length > 12:
		return "TIN is too long: expected at most 12 characters"
	case length == 11 && !strings.ContainsRune("CGN", first):
		return "11-character TINs must start with C, G, N"
	case length == 12 && startsWithLetter:
		return "12-digit individual TINs should not start with a letter"
	case afterPrefix < 10:
		return "TIN is too short: expected 10 digits after the prefix"
	default:
		return "Expected C, G or N followed by 10 digits, or 12 digits"
	}
}

func isSequential(digits string) bool {
	if len(digits) < 2 {
		return false
	}
	ascending, descending := true, true
	for i := 1; i < len(digits); i++ {
		diff := int(digits[i]) - int(digits[i-1])
		if diff != 1 {
			ascending = false
		}
		if diff != -1 {
			descending = false
		}
	}
	return ascending || descending
}

func onlyDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

const fillDigits = "123456789012"

func pad(digits string, size int) string {
	if len(digits) >= size {
		return digits[:size]
	}
	return digits + fillDigits[len(digits):size]
}
