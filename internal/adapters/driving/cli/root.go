// Package cli implements the cobra command tree for carbonscore.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
	"github.com/carbonscore-labs/carbonscore-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root. Tests swap these for mocks.
var (
	searchService     driving.SearchService
	sourceService     driving.SourceService
	documentService   driving.DocumentService
	syncOrchestrator  driving.SyncOrchestrator
	settingsService   driving.SettingsService
	connectorRegistry driving.ConnectorRegistry
	scoreService      driving.ScoreService
	harvestService    driving.HarvestService
	assistantService  driving.AssistantService
	scheduler         driving.Scheduler
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "carbonscore",
	Short: "Scope 1 carbon scoring and ADEME documentation assistant",
	Long: `carbonscore computes scope 1 carbon assessments from activity data
using ADEME Base Carbone emission factors, harvests ADEME librairie
publications, and answers questions grounded in the indexed documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the command tree depends on.
type Services struct {
	Search            driving.SearchService
	Source            driving.SourceService
	Document          driving.DocumentService
	Sync              driving.SyncOrchestrator
	Settings          driving.SettingsService
	ConnectorRegistry driving.ConnectorRegistry
	Score             driving.ScoreService
	Harvest           driving.HarvestService
	Assistant         driving.AssistantService
	Scheduler         driving.Scheduler
}

// SetServices wires the service implementations into the commands.
func SetServices(s Services) {
	searchService = s.Search
	sourceService = s.Source
	documentService = s.Document
	syncOrchestrator = s.Sync
	settingsService = s.Settings
	connectorRegistry = s.ConnectorRegistry
	scoreService = s.Score
	harvestService = s.Harvest
	assistantService = s.Assistant
	scheduler = s.Scheduler
}

// SetVersion overrides the build version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
