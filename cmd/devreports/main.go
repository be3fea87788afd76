package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/devreports/internal/config"
	"github.com/jask/devreports/internal/logging"
	"github.com/jask/devreports/internal/report"
	"github.com/jask/devreports/internal/server"
	"github.com/jask/devreports/internal/service"
	"github.com/jask/devreports/internal/synthesis"
	"github.com/jask/devreports/internal/tui"
)

var (
	dataDir  string
	provider string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "devreports",
	Short: "Browse organizational report paragraphs with AI one-line syntheses",
	Long: `devreports loads CSV files of paragraphs extracted from organizational
documents, filters them by a topic of interest, and augments each result
with a one-line synthesis from a language-model API.

Run without arguments to start the interactive browser.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the data sources discovered in the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := report.DiscoverCatalog(cfg.Data.Dir)
		if err != nil {
			return err
		}
		for _, src := range catalog.Sources() {
			fmt.Println(src)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "directory of report CSV files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "synthesis provider: openai, gemini, extractive (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, sourcesCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if provider != "" {
		cfg.LLM.Provider = provider
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func buildService(cfg config.Config) (*service.ExplorerService, error) {
	catalog, err := report.DiscoverCatalog(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}

	apiKey := cfg.ResolveAPIKey()
	providerName := cfg.LLM.Provider
	if apiKey == "" {
		// no key configured: stay usable with the offline provider
		providerName = "extractive"
	}
	prov, err := synthesis.New(providerName, apiKey, cfg.LLM.Model, cfg.LLM.BaseURL, cfg.LLM.MaxTokens)
	if err != nil {
		return nil, err
	}

	store := report.NewStore(catalog)
	return service.NewExplorer(store, synthesis.NewCache(prov), cfg.UI.ResultsPerPage), nil
}

func runTUI(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFileLogger(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting tui",
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("provider", svc.ProviderName()),
		zap.Int("sources", len(svc.Sources())),
	)

	app := tui.New(ctx, svc)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewStderrLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("provider", svc.ProviderName()),
	)

	return server.Run(ctx, svc, logger, server.Options{
		Addr:      cfg.Server.Addr,
		APIKey:    cfg.Server.APIKey,
		RateLimit: cfg.Server.RateLimit,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
