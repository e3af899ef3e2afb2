package domain

import (
	"fmt"
	"strings"
)

// kWhPerGJ is the exact energy conversion: 1 GJ = 1e9 J, 1 kWh = 3.6e6 J.
const kWhPerGJ = 277.7777777778

// unitAliases maps spelled-out or qualified units to their canonical
// form. The "pci" qualifier (lower heating value) does not change the
// unit itself.
var unitAliases = map[string]string{
	"gj pci":        "gj",
	"kwh pci":       "kwh",
	"mwh pci":       "mwh",
	"kilowattheure": "kwh",
	"gigajoule":     "gj",
	"litre":         "l",
}

// conversionRates holds the supported unit conversions, keyed by
// normalised (from, to) pairs.
var conversionRates = map[[2]string]float64{
	{"kwh", "gj"}:  1.0 / kWhPerGJ,
	{"gj", "kwh"}:  kWhPerGJ,
	{"mwh", "kwh"}: 1000.0,
	{"kwh", "mwh"}: 1.0 / 1000.0,
	{"mwh", "gj"}:  1000.0 / kWhPerGJ,
	{"gj", "mwh"}:  kWhPerGJ / 1000.0,
}

// NormalizeUnit lowercases, trims, and resolves aliases for a unit
// string as found in Base Carbone records.
func NormalizeUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if canonical, ok := unitAliases[u]; ok {
		return canonical
	}
	return u
}

// ConvertAmount converts an amount between units. Identical units
// (after normalisation) pass through unchanged. Unknown pairs return
// ErrUnsupportedUnit.
func ConvertAmount(amount float64, fromUnit, toUnit string) (float64, error) {
	from := NormalizeUnit(fromUnit)
	to := NormalizeUnit(toUnit)
	if from == to {
		return amount, nil
	}
	rate, ok := conversionRates[[2]string{from, to}]
	if !ok {
		return 0, fmt.Errorf("%w: %s -> %s", ErrUnsupportedUnit, fromUnit, toUnit)
	}
	return amount * rate, nil
}
