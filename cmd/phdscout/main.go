// Package main is the entry point for the phdscout CLI: it turns a
// natural-language research interest into a CSV of matching PhD project
// listings.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karston/phdscout/internal/config"
	"github.com/karston/phdscout/internal/llm"
	"github.com/karston/phdscout/internal/pipeline"
	"github.com/karston/phdscout/internal/report"
	"github.com/karston/phdscout/internal/scraper"
	"github.com/karston/phdscout/internal/storage/csvbackend"
)

// defaultPrompt is used when no --prompt flag is given.
const defaultPrompt = "subject should be AI and machine learning or LLMs or multimodal ai or things related to artificial intelligence"

var (
	flagPrompt string
	flagMax    int
	flagOut    string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "phdscout",
	Short: "Scrape PhD listings matching a research interest",
	Long: `phdscout asks a language model to generate FindAPhD search queries for a
stated research interest, scrapes the resulting project pages, extracts
structured fields with the model, and writes the matches to a CSV file.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagPrompt, "prompt", defaultPrompt, "research interest to search for")
	rootCmd.Flags().IntVar(&flagMax, "max", 5, "maximum number of records to accept (0 = unlimited)")
	rootCmd.Flags().StringVar(&flagOut, "out", "phd_listings.csv", "output CSV path")
	rootCmd.Flags().StringVar(&flagConfig, "config", config.DefaultPath, "settings file with api_key, api_base, model_name")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger.Info("loaded configuration", "endpoint", cfg.APIBase, "model", cfg.ModelName)

	client, err := llm.NewClient(cfg)
	if err != nil {
		return err
	}

	fetcher, err := scraper.NewFetcher(scraper.FetchConfig{}, logger)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Completer:  client,
		Fetcher:    fetcher,
		Writer:     csvbackend.New(flagOut),
		Logger:     logger,
		MaxRecords: flagMax,
	}

	records, summary, err := p.Run(cmd.Context(), flagPrompt)
	if summary != nil {
		summary.OutputPath = ""
		if len(records) > 0 {
			summary.OutputPath = flagOut
		}
		if werr := report.WriteText(os.Stdout, summary); werr != nil {
			logger.Error("could not render summary", "err", werr)
		}
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No projects were extracted.")
		return nil
	}

	fmt.Printf("\nExtracted %d projects:\n", len(records))
	for i, rec := range records {
		title := fieldString(rec.Fields, "title")
		university := fieldString(rec.Fields, "university")
		fmt.Printf("%d. %s - %s\n", i+1, title, university)
	}
	return nil
}

// fieldString renders one record field for console output, tolerating the
// permissive extraction schema.
func fieldString(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return "Unknown"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
