package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute and inspect carbon assessments",
	Long: `Compute scope 1 carbon assessments from activity data.

Factors are resolved against the ADEME Base Carbone dataset, with
built-in reference factors as fallback. Biogenic CO2 is reported
separately and never counted in the total.`,
}

var scoreComputeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute an assessment from activity entries",
	Long: `Compute an assessment from activity entries.

Entries are passed either with repeated -e flags in the form
category:activity:quantity:unit, or from a JSON file:

  carbonscore score compute --name "Usine Lyon" \
    -e "1A:Gaz naturel:100000:kWh" \
    -e "1D:R-410A:2:kg"

  carbonscore score compute --name "Usine Lyon" --file entries.json

Categories: 1A fossil combustion, 1B biomass, 1C industrial
processes, 1D refrigerant leakage.`,
	RunE: runScoreCompute,
}

var scoreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored assessments",
	RunE:  runScoreList,
}

var scoreShowCmd = &cobra.Command{
	Use:   "show [assessment-id]",
	Short: "Show a stored assessment",
	Args:  cobra.ExactArgs(1),
	RunE:  runScoreShow,
}

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "Emission factor lookups",
}

var factorsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search Base Carbone emission factors",
	Args:  cobra.ExactArgs(1),
	RunE:  runFactorsSearch,
}

var begesCmd = &cobra.Command{
	Use:   "beges [siren-or-name]",
	Short: "Look up published BEGES reports",
	Long: `Look up published greenhouse gas reports in the ADEME bilan-ges
dataset. A 9-digit numeric argument is treated as a SIREN, anything
else as an organisation name search.`,
	Args: cobra.ExactArgs(1),
	RunE: runBEGES,
}

var (
	scoreName    string
	scoreEntries []string
	scoreFile    string
	scoreJSON    bool
	factorsLimit int
)

func init() {
	scoreComputeCmd.Flags().StringVar(&scoreName, "name", "", "Assessment name (organisation or site)")
	scoreComputeCmd.Flags().StringArrayVarP(&scoreEntries, "entry", "e", nil,
		"Activity entry (category:activity:quantity:unit)")
	scoreComputeCmd.Flags().StringVar(&scoreFile, "file", "", "JSON file with activity entries")
	scoreComputeCmd.Flags().BoolVar(&scoreJSON, "json", false, "output the assessment as JSON")

	factorsSearchCmd.Flags().IntVarP(&factorsLimit, "limit", "n", 10, "maximum number of factors")

	scoreCmd.AddCommand(scoreComputeCmd)
	scoreCmd.AddCommand(scoreListCmd)
	scoreCmd.AddCommand(scoreShowCmd)
	rootCmd.AddCommand(scoreCmd)

	factorsCmd.AddCommand(factorsSearchCmd)
	rootCmd.AddCommand(factorsCmd)

	rootCmd.AddCommand(begesCmd)
}

func runScoreCompute(cmd *cobra.Command, _ []string) error {
	if scoreService == nil {
		return errors.New("score service not configured")
	}

	entries, err := collectEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("no activity entries, use -e or --file")
	}

	name := scoreName
	if name == "" {
		name = "assessment"
	}

	assessment, err := scoreService.Compute(context.Background(), name, entries)
	if err != nil {
		return fmt.Errorf("failed to compute assessment: %w", err)
	}

	if scoreJSON {
		data, err := json.MarshalIndent(assessment, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal assessment: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printAssessment(cmd, assessment)
	return nil
}

func runScoreList(cmd *cobra.Command, _ []string) error {
	if scoreService == nil {
		return errors.New("score service not configured")
	}

	assessments, err := scoreService.ListAssessments(context.Background(), 20)
	if err != nil {
		return fmt.Errorf("failed to list assessments: %w", err)
	}

	if len(assessments) == 0 {
		cmd.Println("No stored assessments.")
		return nil
	}

	cmd.Println("Stored assessments:")
	cmd.Println()
	for i := range assessments {
		cmd.Printf("  %s\n", assessments[i].ID)
		cmd.Printf("    Name:  %s\n", assessments[i].Name)
		cmd.Printf("    Total: %.3f t CO2e\n", assessments[i].TotalTonnes)
		cmd.Printf("    Date:  %s\n", assessments[i].CreatedAt.Format("2006-01-02 15:04"))
		cmd.Println()
	}
	return nil
}

func runScoreShow(cmd *cobra.Command, args []string) error {
	if scoreService == nil {
		return errors.New("score service not configured")
	}

	assessment, err := scoreService.GetAssessment(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get assessment: %w", err)
	}

	printAssessment(cmd, assessment)
	return nil
}

func runFactorsSearch(cmd *cobra.Command, args []string) error {
	if scoreService == nil {
		return errors.New("score service not configured")
	}

	factors, err := scoreService.SearchFactors(context.Background(), args[0], factorsLimit)
	if err != nil {
		return fmt.Errorf("failed to search factors: %w", err)
	}

	if len(factors) == 0 {
		cmd.Println("No factors found.")
		return nil
	}

	cmd.Println("Emission factors:")
	cmd.Println()
	for i := range factors {
		cmd.Printf("  %s\n", factors[i].Name)
		cmd.Printf("    Factor: %g kgCO2e/%s\n", factors[i].Value, factors[i].Unit)
		if factors[i].BiogenicValue > 0 {
			cmd.Printf("    Biogenic: %g kg/%s (reported separately)\n", factors[i].BiogenicValue, factors[i].Unit)
		}
		cmd.Printf("    Source: %s\n", factors[i].Source)
		cmd.Println()
	}
	return nil
}

func runBEGES(cmd *cobra.Command, args []string) error {
	if scoreService == nil {
		return errors.New("score service not configured")
	}

	report, err := scoreService.LookupBEGES(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to look up BEGES reports: %w", err)
	}

	if len(report.Entries) == 0 {
		cmd.Printf("No published reports found for %q.\n", report.Query)
		return nil
	}

	cmd.Printf("Published reports for %q:\n\n", report.Query)
	for i := range report.Entries {
		entry := report.Entries[i]
		cmd.Printf("  %s (SIREN %s)\n", entry.Name, entry.SIREN)
		if entry.Year > 0 {
			cmd.Printf("    Year: %d\n", entry.Year)
		}
		if entry.Scope1Tonnes > 0 {
			cmd.Printf("    Scope 1: %.1f t CO2e\n", entry.Scope1Tonnes)
		}
		cmd.Println()
	}
	return nil
}

func printAssessment(cmd *cobra.Command, assessment *domain.Assessment) {
	cmd.Printf("Assessment: %s\n", assessment.Name)
	cmd.Printf("ID: %s\n\n", assessment.ID)

	for _, result := range assessment.Results {
		cmd.Printf("  [%s] %s\n", result.Category, result.Category.Label())
		cmd.Printf("    Emissions: %.1f kg CO2e (%d entries)\n", result.EmissionsKg, result.Entries)
		if result.BiogenicKg > 0 {
			cmd.Printf("    Biogenic CO2: %.1f kg (reported separately)\n", result.BiogenicKg)
		}
	}

	cmd.Println()
	cmd.Printf("Total: %.3f t CO2e\n", assessment.TotalTonnes)
	if assessment.BiogenicTonnes > 0 {
		cmd.Printf("Biogenic CO2: %.3f t (not counted in total)\n", assessment.BiogenicTonnes)
	}
}

// collectEntries merges flag entries with the optional JSON file.
func collectEntries() ([]domain.ActivityEntry, error) {
	var entries []domain.ActivityEntry

	for _, raw := range scoreEntries {
		entry, err := parseEntry(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if scoreFile != "" {
		data, err := os.ReadFile(scoreFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read entries file: %w", err)
		}
		var fileEntries []activityEntryJSON
		if err := json.Unmarshal(data, &fileEntries); err != nil {
			return nil, fmt.Errorf("failed to parse entries file: %w", err)
		}
		for _, e := range fileEntries {
			entries = append(entries, domain.ActivityEntry{
				Category:            domain.EmissionCategory(e.Category),
				Activity:            e.Activity,
				Quantity:            e.Quantity,
				Unit:                e.Unit,
				FactorValue:         e.FactorValue,
				BiogenicFactorValue: e.BiogenicFactorValue,
			})
		}
	}

	return entries, nil
}

// activityEntryJSON is the file format for score compute --file.
// An explicit factor_value bypasses factor resolution for that entry.
type activityEntryJSON struct {
	Category            string  `json:"category"`
	Activity            string  `json:"activity"`
	Quantity            float64 `json:"quantity"`
	Unit                string  `json:"unit"`
	FactorValue         float64 `json:"factor_value,omitempty"`
	BiogenicFactorValue float64 `json:"biogenic_factor_value,omitempty"`
}

// parseEntry parses the category:activity:quantity:unit flag form.
func parseEntry(raw string) (domain.ActivityEntry, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 4 {
		return domain.ActivityEntry{}, fmt.Errorf(
			"invalid entry %q, expected category:activity:quantity:unit", raw)
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return domain.ActivityEntry{}, fmt.Errorf("invalid quantity in entry %q: %w", raw, err)
	}

	return domain.ActivityEntry{
		Category: domain.EmissionCategory(strings.TrimSpace(parts[0])),
		Activity: strings.TrimSpace(parts[1]),
		Quantity: quantity,
		Unit:     strings.TrimSpace(parts[3]),
	}, nil
}
