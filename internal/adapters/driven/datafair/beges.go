package datafair

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.BEGESProvider = (*Client)(nil)

const defaultBEGESPageSize = 50

// LookupSIREN returns published bilan-ges reports for a SIREN.
func (c *Client) LookupSIREN(ctx context.Context, siren string) (*domain.BEGESReport, error) {
	siren = strings.TrimSpace(siren)
	if !isNineDigits(siren) {
		return nil, fmt.Errorf("%w: siren must be 9 digits, got %q", domain.ErrInvalidInput, siren)
	}
	return c.searchBEGES(ctx, siren, defaultBEGESPageSize)
}

// SearchName returns published bilan-ges reports matching an
// organisation name.
func (c *Client) SearchName(ctx context.Context, name string, limit int) (*domain.BEGESReport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty organisation name", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultBEGESPageSize
	}
	return c.searchBEGES(ctx, name, limit)
}

func (c *Client) searchBEGES(ctx context.Context, query string, size int) (*domain.BEGESReport, error) {
	lines, err := c.lines(ctx, DatasetBEGES, linesQuery{q: query, size: size, page: 1})
	if err != nil {
		return nil, err
	}

	report := &domain.BEGESReport{Query: query}
	for _, line := range lines.Results {
		report.Entries = append(report.Entries, begesEntryFromLine(line))
	}
	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Year > report.Entries[j].Year
	})
	return report, nil
}

// begesEntryFromLine maps a raw bilan-ges row onto the fields the CLI
// displays. The full row is kept for detailed output since column
// names differ between dataset revisions.
func begesEntryFromLine(line map[string]any) domain.BEGESEntry {
	entry := domain.BEGESEntry{Fields: line}
	for _, key := range sortedKeys(line) {
		lower := strings.ToLower(key)
		switch {
		case entry.SIREN == "" && strings.Contains(lower, "siren"):
			entry.SIREN = fieldText(line[key])
		case entry.Name == "" && isNameField(lower):
			entry.Name = fieldText(line[key])
		case entry.Year == 0 && isYearField(lower):
			entry.Year = fieldYear(line[key])
		case entry.Scope1Tonnes == 0 && isScope1Field(lower):
			if value, ok := asNumber(line[key]); ok {
				entry.Scope1Tonnes = value
			}
		}
	}
	return entry
}

func isNameField(key string) bool {
	return strings.Contains(key, "raison_sociale") ||
		strings.Contains(key, "raison sociale") ||
		strings.Contains(key, "denomination") ||
		strings.Contains(key, "dénomination") ||
		key == "nom" || key == "name"
}

func isYearField(key string) bool {
	return strings.Contains(key, "annee") ||
		strings.Contains(key, "année") ||
		strings.Contains(key, "year")
}

func isScope1Field(key string) bool {
	if !strings.Contains(key, "1") {
		return false
	}
	return strings.Contains(key, "scope") || strings.Contains(key, "poste")
}

func fieldText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func fieldYear(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if year, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return year
		}
	}
	return 0
}

func isNineDigits(s string) bool {
	if len(s) != 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
