package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/resumeiq/internal/ai"
	"github.com/amishk599/resumeiq/internal/config"
	"github.com/amishk599/resumeiq/internal/model"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "resumeiq",
	Short: "Score a resume against a job description",
	Long:  "ResumeIQ compares a resume with a job description and reports the match score, skill gaps and ATS tips.",
	// With no subcommand, open the interactive view.
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is normal.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: RESUMEIQ_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it, then fills the API key
// from the environment. Priority: explicit path > RESUMEIQ_CONFIG > "./config.yaml".
// Only an explicitly named file must exist.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.Load(path)
	case os.Getenv("RESUMEIQ_CONFIG") != "":
		cfg, err = config.Load(os.Getenv("RESUMEIQ_CONFIG"))
	default:
		cfg, err = config.LoadOptional("config.yaml")
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// setupAnalyzer wires the configured provider into an LLMAnalyzer. The HTTP
// client has no timeout; the provider call runs until it completes or fails.
func setupAnalyzer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (model.Analyzer, error) {
	provider, err := ai.NewProvider(ctx, cfg.AI, &http.Client{})
	if err != nil {
		return nil, fmt.Errorf("creating %s provider: %w", cfg.AI.Provider, err)
	}
	if _, ok := provider.(ai.UnconfiguredProvider); ok {
		logger.Warn("no API key configured, analysis will fail", "provider", cfg.AI.Provider)
	} else {
		logger.Info("AI analysis enabled", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	}
	return ai.NewLLMAnalyzer(provider, ai.ResumeMatchTemplate, logger), nil
}
