package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/podseek/search-api/internal/database"
	"github.com/podseek/search-api/internal/library"
	"github.com/podseek/search-api/internal/models"
	searchcore "github.com/podseek/search-api/internal/search"
	"github.com/podseek/search-api/internal/services/podcastindex"
	"github.com/podseek/search-api/pkg/config"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog interactively",
	Long: `Run an interactive search session against the configured catalog.

Each line typed is a query edit: input is debounced, re-served from the
result cache when only the trailing word changed, and falls back to the
local library when no catalog credentials are configured. Queries
support quoted phrases, -exclusions and OR groups.

Type "quit" or press Ctrl-D to leave.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var local searchcore.LocalSource
	db, err := database.Open(cfg.Database.Path, cfg.Database.Verbose)
	if err == nil {
		defer db.Close()
		if err := db.AutoMigrate(&models.Podcast{}, &models.Episode{}); err == nil {
			local = library.NewService(library.NewRepository(db.DB))
		}
	}

	catalog := podcastindex.NewCatalog(podcastindex.NewClient(podcastindex.Config{
		APIKey:            cfg.PodcastIndex.APIKey,
		APISecret:         cfg.PodcastIndex.APISecret,
		BaseURL:           cfg.PodcastIndex.BaseURL,
		UserAgent:         cfg.PodcastIndex.UserAgent,
		Timeout:           cfg.PodcastIndex.Timeout,
		RequestsPerSecond: cfg.PodcastIndex.RateLimit,
	}))

	svc := searchcore.NewService(searchcore.ServiceOptions{
		Client:         catalog,
		Local:          local,
		ResultLimit:    cfg.Search.ResultLimit,
		FallbackFeeds:  cfg.Search.EpisodeFallbackFeeds,
		MinQueryLength: cfg.Search.MinQueryLength,
	})

	orch := searchcore.NewOrchestrator(svc, searchcore.Options{
		QueryDebounce:  cfg.Search.QueryDebounce,
		FilterDebounce: cfg.Search.FilterDebounce,
		MinQueryLength: cfg.Search.MinQueryLength,
	})

	out := cmd.OutOrStdout()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range orch.Updates() {
			printSearchResults(out, orch)
		}
	}()

	if !catalog.IsConfigured() {
		fmt.Fprintln(out, "No catalog credentials configured, searching the local library.")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		orch.SetQuery(line)
	}

	orch.Close()
	<-done
	return scanner.Err()
}

func printSearchResults(w io.Writer, orch *searchcore.Orchestrator) {
	if orch.Loading() {
		return
	}
	if msg := orch.LastError(); msg != "" {
		fmt.Fprintln(w, msg)
		return
	}

	state := orch.Results()
	fmt.Fprintf(w, "%d podcast(s), %d episode(s)\n", len(state.Podcasts), len(state.Episodes))
	for i, p := range state.Podcasts {
		if i >= 10 {
			fmt.Fprintln(w, "  ...")
			break
		}
		fmt.Fprintf(w, "  %s - %s\n", p.Title, p.Author)
	}
}
