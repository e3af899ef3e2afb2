package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/carbonscore-labs/carbonscore-cli/internal/adapters/driving/tui"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	SearchService    driving.SearchService
	SourceService    driving.SourceService
	SyncOrchestrator driving.SyncOrchestrator
	DocumentService  driving.DocumentService
	SettingsService  driving.SettingsService
	Scheduler        driving.Scheduler
	SchedulerConfig  domain.SchedulerConfig
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI provides a visual interface for searching the indexed
publications and viewing results with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search / Select
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps stack traces visible after the alt screen
	// is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// The TUI is long-running, so background tasks run alongside it.
	if tuiConfig != nil && tuiConfig.SchedulerConfig.Enabled && tuiConfig.Scheduler != nil {
		schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
		defer schedulerCancel()

		go func() {
			if err := tuiConfig.Scheduler.Start(schedulerCtx); err != nil {
				fmt.Fprintf(os.Stderr, "scheduler stopped: %v\n", err)
			}
		}()

		defer func() {
			if err := tuiConfig.Scheduler.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "scheduler stop error: %v\n", err)
			}
		}()
	}

	ports := &tui.Ports{}
	if tuiConfig != nil {
		ports.Search = tuiConfig.SearchService
		ports.Source = tuiConfig.SourceService
		ports.Sync = tuiConfig.SyncOrchestrator
		ports.Document = tuiConfig.DocumentService
		ports.Settings = tuiConfig.SettingsService
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
