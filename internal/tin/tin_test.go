package tin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Formats(t *testing.T) {
	cases := []struct {
		name string
		in   string
		typ  Type
	}{
		{"corporate", "C1234567890", TypeCorporate},
		{"individual", "123456789012", TypeIndividual},
		{"government", "G1234567890", TypeGovernment},
		{"nonprofit", "N1234567890", TypeNonprofit},
		{"lowercase prefix", "c1234567890", TypeCorporate},
		{"internal whitespace", " C 12345 67890 ", TypeCorporate},
		{"individual with spaces", "1234 5678 9012", TypeIndividual},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.in)
			assert.True(t, res.IsValid)
			assert.Equal(t, tc.typ, res.Type)
			assert.Empty(t, res.Errors)
			assert.Empty(t, res.Diagnostic)
		})
	}
}

func TestValidate_Required(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		res := Validate(in)
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{ErrRequired}, res.Errors)
		assert.Equal(t, TypeUnknown, res.Type)
	}
}

func TestValidate_Diagnostics(t *testing.T) {
	cases := []struct {
		in         string
		diagnostic string
	}{
		{"INVALID", "TIN is too short: expected 10 digits after the prefix"},
		{"C12345", "TIN is too short: expected 10 digits after the prefix"},
		{"1234567890123", "TIN is too long: expected at most 12 characters"},
		{"X1234567890", "11-character TINs must start with C, G, N"},
		{"A12345678901", "12-digit individual TINs should not start with a letter"},
		{"ÉÉÉÉÉÉ", "TIN is too short: expected 10 digits after the prefix"},
		{"É1234567890", "11-character TINs must start with C, G, N"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			res := Validate(tc.in)
			require.False(t, res.IsValid)
			assert.Equal(t, []string{ErrInvalidFormat}, res.Errors, "diagnostics are not extra errors")
			assert.Equal(t, tc.diagnostic, res.Diagnostic)
			assert.Equal(t, genericExample, res.FormatExample)
		})
	}
}

func TestValidate_SuspiciousPatternsOnlyWarn(t *testing.T) {
	cases := []struct {
		in      string
		warning string
	}{
		{"C0123456789", WarnSequential},
		{"N9876543210", WarnSequential},
		{"G0001928374", WarnLeadingZero},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			res := Validate(tc.in)
			assert.True(t, res.IsValid)
			assert.Contains(t, res.Warnings, tc.warning)
			assert.Empty(t, res.Errors)
		})
	}

	clean := Validate("C2081937465")
	assert.True(t, clean.IsValid)
	assert.Empty(t, clean.Warnings)
}

func TestFormatForDisplay(t *testing.T) {
	assert.Equal(t, "C 12345 67890", FormatForDisplay("c1234567890"))
	assert.Equal(t, "1234 5678 9012", FormatForDisplay("123456789012"))
	assert.Equal(t, "G 12345 67890", FormatForDisplay("G 1234567890"))
	assert.Equal(t, "BAD", FormatForDisplay("bad"))
}

func TestDescribeType(t *testing.T) {
	assert.Equal(t, "Government agency", DescribeType(TypeGovernment))
	assert.Equal(t, "Unknown", DescribeType(TypeUnknown))
}

func TestSuggestFormats(t *testing.T) {
	assert.Len(t, SuggestFormats(""), 3)
	assert.Equal(t, []string{"C1234567890"}, SuggestFormats("c12"))
	assert.Equal(t, []string{"123456789012", "C1234567890", "G1234567890"}, SuggestFormats("1234"))

	for _, s := range SuggestFormats("99887") {
		assert.True(t, IsValid(s), s)
	}
	assert.LessOrEqual(t, len(SuggestFormats("x")), 3)
}
