package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest ADEME librairie publications",
	Long: `Fetch the ADEME librairie RSS feeds, scan publication pages for
PDF attachments, and download them.`,
}

var harvestRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the RSS feeds and store new articles",
	RunE:  runHarvestRefresh,
}

var harvestScanCmd = &cobra.Command{
	Use:   "scan [article-id]",
	Short: "Scan an article page for PDF attachments",
	Args:  cobra.ExactArgs(1),
	RunE:  runHarvestScan,
}

var harvestDownloadCmd = &cobra.Command{
	Use:   "download [article-id]",
	Short: "Download detected PDFs for an article",
	Args:  cobra.ExactArgs(1),
	RunE:  runHarvestDownload,
}

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Browse harvested articles",
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List harvested articles",
	RunE:  runArticlesList,
}

var (
	harvestThemes []string
	articlesTheme string
	articlesLimit int
)

func init() {
	harvestRefreshCmd.Flags().StringSliceVar(&harvestThemes, "theme", nil,
		"Themes to refresh (default: all configured)")
	articlesListCmd.Flags().StringVar(&articlesTheme, "theme", "", "Filter by theme")
	articlesListCmd.Flags().IntVarP(&articlesLimit, "limit", "n", 20, "maximum number of articles")

	harvestCmd.AddCommand(harvestRefreshCmd)
	harvestCmd.AddCommand(harvestScanCmd)
	harvestCmd.AddCommand(harvestDownloadCmd)
	rootCmd.AddCommand(harvestCmd)

	articlesCmd.AddCommand(articlesListCmd)
	rootCmd.AddCommand(articlesCmd)
}

func runHarvestRefresh(cmd *cobra.Command, _ []string) error {
	if harvestService == nil {
		return errors.New("harvest service not configured")
	}

	cmd.Println("Refreshing feeds...")
	stats, err := harvestService.RefreshFeeds(context.Background(), harvestThemes)
	if err != nil {
		return fmt.Errorf("failed to refresh feeds: %w", err)
	}

	cmd.Printf("Fetched %d feeds, %d new articles, %d updated, %d active",
		stats.FeedsFetched, stats.NewArticles, stats.UpdatedArticles, stats.ActiveArticles)
	if stats.Errors > 0 {
		cmd.Printf(", %d feeds failed", stats.Errors)
	}
	cmd.Println()
	return nil
}

func runHarvestScan(cmd *cobra.Command, args []string) error {
	if harvestService == nil {
		return errors.New("harvest service not configured")
	}

	links, err := harvestService.ScanArticle(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to scan article: %w", err)
	}

	if len(links) == 0 {
		cmd.Println("No PDF attachments found.")
		return nil
	}

	cmd.Printf("Detected %d PDF attachments:\n\n", len(links))
	for i := range links {
		cmd.Printf("  %s [%s]\n", links[i].URL, links[i].Status)
	}
	return nil
}

func runHarvestDownload(cmd *cobra.Command, args []string) error {
	if harvestService == nil {
		return errors.New("harvest service not configured")
	}

	links, err := harvestService.DownloadPDFs(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to download PDFs: %w", err)
	}

	if len(links) == 0 {
		cmd.Println("No PDFs to download, run 'carbonscore harvest scan' first.")
		return nil
	}

	for i := range links {
		link := links[i]
		if link.Status == domain.PDFDownloaded {
			cmd.Printf("  downloaded %s (%d bytes)\n", link.Filename, link.Size)
		} else {
			cmd.Printf("  %s: %s\n", link.Status, link.URL)
		}
	}
	return nil
}

func runArticlesList(cmd *cobra.Command, _ []string) error {
	if harvestService == nil {
		return errors.New("harvest service not configured")
	}

	articles, err := harvestService.ListArticles(context.Background(), articlesTheme, articlesLimit)
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	if len(articles) == 0 {
		cmd.Println("No harvested articles, run 'carbonscore harvest refresh' first.")
		return nil
	}

	cmd.Println("Harvested articles:")
	cmd.Println()
	for i := range articles {
		cmd.Printf("  %s\n", articles[i].ID)
		cmd.Printf("    Title: %s\n", articles[i].Title)
		if articles[i].Theme != "" {
			cmd.Printf("    Theme: %s\n", articles[i].Theme)
		}
		cmd.Printf("    URL: %s\n", articles[i].URL)
		if !articles[i].Published.IsZero() {
			cmd.Printf("    Published: %s\n", articles[i].Published.Format("2006-01-02"))
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d articles\n", len(articles))
	return nil
}
