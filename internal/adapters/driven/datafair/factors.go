package datafair

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.FactorProvider = (*Client)(nil)

// The Base Carbone schema varies between dataset versions, so the
// factor value and unit are guessed from field names rather than read
// from fixed columns.
var (
	numericFieldHints = []string{"valeur", "valeur_co2", "kgco2e", "kgco2eq", "kgco2", "co2", "total"}
	unitFieldHints    = []string{"unite", "unité", "unit"}
	nameFieldHints    = []string{"nom_base_français", "nom_base_francais", "libellé", "libelle", "nom", "name"}

	embeddedNumber = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)
)

// Search returns Base Carbone factors matching the query text.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.EmissionFactor, error) {
	if limit <= 0 {
		limit = 50
	}

	lines, err := c.lines(ctx, DatasetBaseCarbone, linesQuery{q: query, size: limit, page: 1})
	if err != nil {
		return nil, err
	}

	factors := make([]domain.EmissionFactor, 0, len(lines.Results))
	for _, line := range lines.Results {
		factor, ok := factorFromLine(line)
		if !ok {
			continue
		}
		if factor.Name == "" {
			factor.Name = query
		}
		factors = append(factors, factor)
	}
	return factors, nil
}

// Resolve returns the single best Base Carbone factor for an activity.
func (c *Client) Resolve(ctx context.Context, activity string) (*domain.EmissionFactor, error) {
	factors, err := c.Search(ctx, activity, 1)
	if err != nil {
		return nil, err
	}
	if len(factors) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrFactorNotFound, activity)
	}
	return &factors[0], nil
}

// factorFromLine builds an emission factor from a raw dataset row.
// Rows without a guessable numeric value are skipped.
func factorFromLine(line map[string]any) (domain.EmissionFactor, bool) {
	value, ok := guessFactorValue(line)
	if !ok {
		return domain.EmissionFactor{}, false
	}
	return domain.EmissionFactor{
		ID:             stringValue(line["_id"]),
		Name:           guessFactorName(line),
		Unit:           domain.NormalizeUnit(guessFactorUnit(line)),
		Value:          value,
		Source:         "Base Carbone",
		DatasetVersion: guessDatasetVersion(line),
		RetrievedAt:    time.Now(),
	}, true
}

// guessDatasetVersion finds a version field on the row, falling back to
// the Data Fair row update marker.
func guessDatasetVersion(line map[string]any) string {
	for _, key := range sortedKeys(line) {
		if strings.Contains(strings.ToLower(key), "version") {
			if text := stringValue(line[key]); strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
	}
	return stringValue(line["_updatedAt"])
}

// guessFactorValue picks the numeric field that most looks like a
// CO2e factor value. Falls back to the first number embedded in a
// string field, accepting comma decimals.
func guessFactorValue(line map[string]any) (float64, bool) {
	bestScore := -1
	var bestValue float64
	for _, key := range sortedKeys(line) {
		value, ok := asNumber(line[key])
		if !ok {
			continue
		}
		score := 0
		lower := strings.ToLower(key)
		for _, hint := range numericFieldHints {
			if strings.Contains(lower, hint) {
				score += 10
				break
			}
		}
		if strings.Contains(lower, "co2") {
			score += 5
		}
		if score > bestScore {
			bestScore = score
			bestValue = value
		}
	}
	if bestScore >= 0 {
		return bestValue, true
	}

	for _, key := range sortedKeys(line) {
		text, ok := line[key].(string)
		if !ok {
			continue
		}
		match := embeddedNumber.FindString(text)
		if match == "" {
			continue
		}
		if value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64); err == nil {
			return value, true
		}
	}
	return 0, false
}

// guessFactorUnit finds a unit field, or extracts the denominator from
// a combined value such as "kgCO2e / kWh".
func guessFactorUnit(line map[string]any) string {
	for _, key := range sortedKeys(line) {
		lower := strings.ToLower(key)
		for _, hint := range unitFieldHints {
			if !strings.Contains(lower, hint) {
				continue
			}
			if text, ok := line[key].(string); ok && strings.TrimSpace(text) != "" {
				return denominatorUnit(text)
			}
		}
	}
	for _, key := range sortedKeys(line) {
		text, ok := line[key].(string)
		if !ok {
			continue
		}
		if strings.Contains(text, "/") && strings.Contains(strings.ToLower(text), "co2") {
			return denominatorUnit(text)
		}
	}
	return ""
}

// denominatorUnit reduces combined units such as "kgCO2e / kWh" to the
// activity unit after the slash.
func denominatorUnit(text string) string {
	if strings.Contains(text, "/") {
		parts := strings.Split(text, "/")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return strings.TrimSpace(text)
}

func guessFactorName(line map[string]any) string {
	for _, hint := range nameFieldHints {
		for _, key := range sortedKeys(line) {
			if !strings.Contains(strings.ToLower(key), hint) {
				continue
			}
			if text, ok := line[key].(string); ok && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
	}
	return ""
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// sortedKeys keeps field scanning deterministic.
func sortedKeys(line map[string]any) []string {
	keys := make([]string, 0, len(line))
	for key := range line {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
