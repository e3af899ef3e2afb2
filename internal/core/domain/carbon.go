package domain

import "time"

// EmissionCategory is a scope 1 emission category from the
// Bilan Carbone methodology.
type EmissionCategory string

const (
	// CategoryFossil covers direct fossil fuel combustion (1A).
	CategoryFossil EmissionCategory = "1A"

	// CategoryBiomass covers biomass and biogas combustion (1B).
	CategoryBiomass EmissionCategory = "1B"

	// CategoryProcess covers industrial process emissions (1C).
	CategoryProcess EmissionCategory = "1C"

	// CategoryRefrigerant covers refrigerant leakage (1D).
	CategoryRefrigerant EmissionCategory = "1D"
)

// Label returns the French display label for the category.
func (c EmissionCategory) Label() string {
	switch c {
	case CategoryFossil:
		return "Combustion fossile"
	case CategoryBiomass:
		return "Biomasse / biogaz"
	case CategoryProcess:
		return "Procédés industriels"
	case CategoryRefrigerant:
		return "Fuites de fluides frigorigènes"
	default:
		return unknownDescription
	}
}

// IsValid returns true if the category is recognised.
func (c EmissionCategory) IsValid() bool {
	switch c {
	case CategoryFossil, CategoryBiomass, CategoryProcess, CategoryRefrigerant:
		return true
	default:
		return false
	}
}

// EmissionFactor converts an activity quantity into kg CO2e.
type EmissionFactor struct {
	// ID is the unique identifier, empty for built-in factors.
	ID string

	// Name is the activity name (e.g., "Gaz naturel").
	Name string

	// Category is the scope 1 category the factor belongs to.
	Category EmissionCategory

	// Unit is the activity unit the factor applies to (kWh, L, t, kg).
	Unit string

	// Value is the counted factor in kg CO2e per unit. For biomass
	// this covers CH4 and N2O only.
	Value float64

	// BiogenicValue is the biogenic CO2 per unit, reported separately
	// and never counted in totals. Zero for non-biomass factors.
	BiogenicValue float64

	// Source describes where the factor comes from
	// (e.g., "Base Carbone", "builtin", "explicit").
	Source string

	// DatasetVersion is the Base Carbone dataset version the factor
	// came from, empty for built-in and explicit factors.
	DatasetVersion string

	// RetrievedAt is when the factor was fetched from the provider,
	// zero for built-in and explicit factors.
	RetrievedAt time.Time
}

// BuiltinFactors are the reference factors used when the Base Carbone
// API is unreachable or returns no match.
var BuiltinFactors = []EmissionFactor{
	{Name: "Gaz naturel", Category: CategoryFossil, Unit: "kwh", Value: 0.204, Source: "builtin"},
	{Name: "Fioul domestique", Category: CategoryFossil, Unit: "l", Value: 2.68, Source: "builtin"},
	{Name: "Gazole flotte", Category: CategoryFossil, Unit: "l", Value: 3.17, Source: "builtin"},
	{Name: "Bois énergie", Category: CategoryBiomass, Unit: "kwh", Value: 0.012, BiogenicValue: 0.35, Source: "builtin"},
	{Name: "Clinker", Category: CategoryProcess, Unit: "t", Value: 550, Source: "builtin"},
	{Name: "R-410A", Category: CategoryRefrigerant, Unit: "kg", Value: 2088, Source: "builtin"},
	{Name: "R-134a", Category: CategoryRefrigerant, Unit: "kg", Value: 1430, Source: "builtin"},
}

// ActivityEntry is one line of activity data supplied by the user.
type ActivityEntry struct {
	// Category is the scope 1 category for this entry.
	Category EmissionCategory

	// Activity names the emission source (matched against factors).
	Activity string

	// Quantity is the amount of activity.
	Quantity float64

	// Unit is the unit the quantity is expressed in. Converted to the
	// factor's unit before multiplication.
	Unit string

	// FactorValue is an explicit emission factor in kg CO2e per Unit.
	// When positive it takes precedence over factor resolution.
	FactorValue float64

	// BiogenicFactorValue is the explicit biogenic CO2 per Unit,
	// only read together with FactorValue.
	BiogenicFactorValue float64
}

// CategoryResult holds the computed emissions for one category.
type CategoryResult struct {
	// Category is the scope 1 category.
	Category EmissionCategory

	// EmissionsKg is the counted emissions in kg CO2e.
	EmissionsKg float64

	// BiogenicKg is the biogenic CO2 in kg, reported separately.
	BiogenicKg float64

	// Entries is the number of activity entries in the category.
	Entries int
}

// Assessment is a computed scope 1 carbon assessment.
type Assessment struct {
	// ID is the unique identifier.
	ID string

	// Name labels the assessment (organisation or site name).
	Name string

	// Entries are the activity lines the assessment was computed from.
	Entries []ActivityEntry

	// Results holds the per-category breakdown.
	Results []CategoryResult

	// TotalKg is the counted total in kg CO2e. Biogenic CO2 is
	// excluded.
	TotalKg float64

	// TotalTonnes is TotalKg expressed in t CO2e.
	TotalTonnes float64

	// BiogenicKg is the biogenic CO2 total in kg, informative only.
	BiogenicKg float64

	// BiogenicTonnes is BiogenicKg expressed in t.
	BiogenicTonnes float64

	// CreatedAt is when the assessment was computed.
	CreatedAt time.Time
}

// BEGESEntry is one reported assessment from the ADEME bilan-ges
// dataset.
type BEGESEntry struct {
	// SIREN is the 9-digit organisation identifier.
	SIREN string

	// Name is the reporting organisation's name.
	Name string

	// Year is the reporting year.
	Year int

	// Scope1Tonnes is the reported scope 1 total in t CO2e.
	Scope1Tonnes float64

	// Fields holds the raw dataset record for display.
	Fields map[string]any
}

// BEGESReport groups the bilan-ges entries found for an organisation.
type BEGESReport struct {
	// Query is the SIREN or name searched for.
	Query string

	// Entries are the matching reports, most recent first.
	Entries []BEGESEntry
}
