package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Table is an immutable MSIC lookup table. It is safe for concurrent use; replacing the
// data means building a new Table.
type Table struct {
	entries []IndustryCode
	byCode  map[string]int
}

// NewTable builds a table from entries. Codes must be unique and sections valid.
func NewTable(entries []IndustryCode) (*Table, error) {
	sorted := make([]IndustryCode, 0, len(entries))
	byCode := make(map[string]int, len(entries))
	for _, entry := range entries {
		entry.Code = strings.TrimSpace(entry.Code)
		entry.Section = strings.ToUpper(strings.TrimSpace(entry.Section))
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("industry code %q: %w", entry.Code, err)
		}
		if _, exists := byCode[entry.Code]; exists {
			return nil, fmt.Errorf("industry code %q: %w", entry.Code, ErrDuplicateIndustryCode)
		}
		byCode[entry.Code] = 0
		sorted = append(sorted, entry)
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })
	for i, entry := range sorted {
		byCode[entry.Code] = i
	}
	return &Table{entries: sorted, byCode: byCode}, nil
}

// DefaultTable builds the table from the shipped dataset.
func DefaultTable() *Table {
	table, err := NewTable(builtinCodes)
	if err != nil {
		panic(err)
	}
	return table
}

// Merge layers overrides on top of base, replacing entries with the same code. Later
// override sets win.
func Merge(base []IndustryCode, overrides ...[]IndustryCode) []IndustryCode {
	merged := make([]IndustryCode, 0, len(base))
	index := make(map[string]int, len(base))
	put := func(entry IndustryCode) {
		code := strings.TrimSpace(entry.Code)
		if i, ok := index[code]; ok {
			merged[i] = entry
			return
		}
		index[code] = len(merged)
		merged = append(merged, entry)
	}
	for _, entry := range base {
		put(entry)
	}
	for _, set := range overrides {
		for _, entry := range set {
			put(entry)
		}
	}
	return merged
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// All returns every entry ordered by code.
func (t *Table) All() []IndustryCode {
	out := make([]IndustryCode, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup finds an entry by exact code.
func (t *Table) Lookup(code string) (IndustryCode, bool) {
	i, ok := t.byCode[strings.TrimSpace(code)]
	if !ok {
		return IndustryCode{}, false
	}
	return t.entries[i], true
}

// Search matches query case-insensitively against code, description and category.
// A blank query returns every entry.
func (t *Table) Search(query string) []IndustryCode {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return t.All()
	}
	return t.filter(func(c IndustryCode) bool {
		return strings.Contains(strings.ToLower(c.Code), q) ||
			strings.Contains(strings.ToLower(c.Description), q) ||
			strings.Contains(strings.ToLower(c.Category), q)
	})
}

func (t *Table) ByCategory(category string) []IndustryCode {
	category = strings.TrimSpace(category)
	return t.filter(func(c IndustryCode) bool {
		return strings.EqualFold(c.Category, category)
	})
}

func (t *Table) BySection(section string) []IndustryCode {
	section = strings.ToUpper(strings.TrimSpace(section))
	return t.filter(func(c IndustryCode) bool {
		return c.Section == section
	})
}

// IsSSTApplicable is false for unknown codes.
func (t *Table) IsSSTApplicable(code string) bool {
	entry, ok := t.Lookup(code)
	return ok && entry.SSTApplicable
}

// IsConsolidationAllowed decides B2C consolidation eligibility for code. The policy
// prohibited list always wins; unknown codes are allowed with a caution.
func (t *Table) IsConsolidationAllowed(code string) Eligibility {
	code = strings.TrimSpace(code)

	if group := ProhibitedGroup(code); group != "" {
		return Eligibility{
			Allowed:      false,
			Reason:       fmt.Sprintf("Industry group %q is excluded from B2C consolidation by LHDN policy", group),
			Restrictions: []string{"Issue individual invoices for every transaction"},
		}
	}

	entry, ok := t.Lookup(code)
	if !ok {
		return Eligibility{
			Allowed:      true,
			Reason:       fmt.Sprintf("Industry code %q not found in database; consolidation allowed with caution", code),
			Restrictions: []string{"Verify consolidation eligibility manually with LHDN before submitting"},
		}
	}

	if !entry.AllowsB2CConsolidation {
		reason := "This industry does not permit B2C consolidation"
		if entry.Notes != nil && strings.TrimSpace(*entry.Notes) != "" {
			reason = strings.TrimSpace(*entry.Notes)
		}
		return Eligibility{
			Allowed:      false,
			Reason:       reason,
			Restrictions: []string{"Issue individual invoices for every transaction"},
		}
	}

	switch entry.Category {
	case CategoryFoodAndBeverage:
		return Eligibility{
			Allowed:      true,
			Restrictions: []string{"Recommended maximum of 200 transactions per consolidated invoice per month"},
		}
	case CategoryRetailTrade:
		return Eligibility{
			Allowed:      true,
			Restrictions: []string{"Recommended maximum of RM50,000 per consolidated invoice"},
		}
	}
	return Eligibility{Allowed: true}
}

func (t *Table) filter(keep func(IndustryCode) bool) []IndustryCode {
	out := make([]IndustryCode, 0)
	for _, entry := range t.entries {
		if keep(entry) {
			out = append(out, entry)
		}
	}
	return out
}
