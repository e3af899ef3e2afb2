package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage document sources",
	Long:  `Add, list, and remove document sources backed by connectors.`,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add [connector-type]",
	Short: "Add a new source",
	Long: `Add a new source for a connector type.

Configuration is passed with repeated -c key=value flags. Run
'carbonscore connector list' to see the available connector types and
their configuration keys.

Examples:
  carbonscore source add filesystem -c path=/home/me/notes
  carbonscore source add ademe -c themes="Air,Énergies"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE:  runSourceList,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [source-id]",
	Short: "Remove a source and its indexed data",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

var connectorCmd = &cobra.Command{
	Use:   "connector",
	Short: "Inspect available connectors",
}

var connectorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available connector types",
	RunE:  runConnectorList,
}

var (
	sourceAddName   string
	sourceAddConfig []string
)

func init() {
	sourceAddCmd.Flags().StringVar(&sourceAddName, "name", "", "Human-readable source name")
	sourceAddCmd.Flags().StringArrayVarP(&sourceAddConfig, "config", "c", nil, "Connector configuration (key=value)")

	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	rootCmd.AddCommand(sourceCmd)

	connectorCmd.AddCommand(connectorListCmd)
	rootCmd.AddCommand(connectorCmd)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	if connectorRegistry == nil {
		return errors.New("connector registry not configured")
	}
	if len(args) == 0 {
		return errors.New("connector type required, see 'carbonscore connector list'")
	}

	connectorType := args[0]
	config, err := parseConfigFlags(sourceAddConfig)
	if err != nil {
		return err
	}

	if err := connectorRegistry.ValidateConfig(connectorType, config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	name := sourceAddName
	if name == "" {
		name = connectorType
	}

	source := domain.Source{
		ID:     uuid.NewString(),
		Type:   connectorType,
		Name:   name,
		Config: config,
	}

	if err := sourceService.Add(context.Background(), source); err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	cmd.Printf("Added source: %s (%s)\n", source.ID, source.Type)
	cmd.Println("Run 'carbonscore sync' to index its documents.")
	return nil
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No configured sources.")
		return nil
	}

	cmd.Println("Configured sources:")
	cmd.Println()
	for i := range sources {
		cmd.Printf("  %s\n", sources[i].ID)
		cmd.Printf("    Name: %s\n", sources[i].Name)
		cmd.Printf("    Type: %s\n", sources[i].Type)
		cmd.Println()
	}
	cmd.Printf("Total: %d sources\n", len(sources))
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sourceID := args[0]
	if err := sourceService.Remove(context.Background(), sourceID); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	cmd.Printf("Removed source: %s\n", sourceID)
	return nil
}

func runConnectorList(cmd *cobra.Command, _ []string) error {
	if connectorRegistry == nil {
		return errors.New("connector registry not configured")
	}

	connectors := connectorRegistry.List()
	if len(connectors) == 0 {
		cmd.Println("No connectors available.")
		return nil
	}

	cmd.Println("Available connectors:")
	cmd.Println()
	for i := range connectors {
		cmd.Printf("  %s - %s\n", connectors[i].ID, connectors[i].Name)
		if connectors[i].Description != "" {
			cmd.Printf("    %s\n", connectors[i].Description)
		}
		if len(connectors[i].ConfigKeys) > 0 {
			cmd.Println("    Config:")
			for _, key := range connectors[i].ConfigKeys {
				required := ""
				if key.Required {
					required = " (required)"
				}
				cmd.Printf("      --%s: %s%s\n", key.Key, key.Description, required)
			}
		}
		cmd.Println()
	}
	return nil
}

// parseConfigFlags turns repeated key=value flags into a config map.
func parseConfigFlags(pairs []string) (map[string]string, error) {
	config := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid config %q, expected key=value", pair)
		}
		config[key] = value
	}
	return config, nil
}
