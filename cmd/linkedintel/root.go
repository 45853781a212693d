package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thomaskoefod/linkedintel/internal/analysis"
	"github.com/thomaskoefod/linkedintel/internal/config"
	"github.com/thomaskoefod/linkedintel/internal/export"
	"github.com/thomaskoefod/linkedintel/internal/logging"
	"github.com/thomaskoefod/linkedintel/internal/report"
)

// =============================================================================
// Root Command Flags
// =============================================================================

var (
	configPath string
	dataDir    string
	selfName   string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "linkedintel",
	Short: "LinkedIn network relationship analysis",
	Long: `linkedintel reads a LinkedIn data export and scores every connection
for relationship strength, vouch likelihood and reciprocity.

Examples:
  linkedintel report -d ~/Downloads/Basic_LinkedInDataExport
  linkedintel report --example
  linkedintel warm-path Stripe -d ./export
  linkedintel score "Sarah Chen" -d ./export
  linkedintel dashboard -d ./export`,
	SilenceUsage: true,
}

func init() {
	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file")
	pflags.StringVarP(&dataDir, "data", "d", "", "LinkedIn export directory")
	pflags.StringVar(&selfName, "self", "", "your name as it appears in messages.csv")
	pflags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func Execute() error {
	return rootCmd.Execute()
}

// =============================================================================
// Shared Setup
// =============================================================================

// session is what every analysis command needs: config, logger and a scored
// view of the export.
type session struct {
	cfg      *config.Config
	log      *slog.Logger
	analyzer *analysis.Analyzer
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Export.DataDir = dataDir
	}
	if selfName != "" {
		cfg.Identity.Self = selfName
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Logging.Level, cmd.ErrOrStderr())
	return openSession(cfg, log)
}

func openSession(cfg *config.Config, log *slog.Logger) (*session, error) {
	if cfg.Export.DataDir == "" {
		return nil, fmt.Errorf("no export directory: pass --data or set export.data_dir in %s", configPath)
	}
	info, err := os.Stat(cfg.Export.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening export directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("export path %s is not a directory", cfg.Export.DataDir)
	}

	ds, err := export.ParseDir(cfg.Export.DataDir,
		export.WithLogger(log),
		export.WithHTMLStripping(cfg.Export.StripHTML),
	)
	if err != nil {
		return nil, err
	}
	log.Info("export loaded",
		"dir", cfg.Export.DataDir,
		"connections", len(ds.Connections),
		"messages", len(ds.Messages),
	)

	a := analysis.New(ds,
		analysis.WithSelf(cfg.Identity.Self),
		analysis.WithHalfLife(cfg.Scoring.HalfLifeDays),
		analysis.WithWorkers(cfg.Scoring.Workers),
		analysis.WithResurrectionLimit(cfg.Scoring.ResurrectionLimit),
		analysis.WithLogger(log),
	)
	return &session{cfg: cfg, log: log, analyzer: a}, nil
}

// print writes markdown to w, rendered for the terminal unless raw is set.
func (s *session) print(w io.Writer, markdown string, raw bool) error {
	if !raw {
		out, err := report.Render(markdown, s.cfg.Report.Style, s.cfg.Report.WordWrap)
		if err != nil {
			return err
		}
		markdown = out
	}
	_, err := io.WriteString(w, markdown)
	return err
}

// save writes markdown into the configured output directory.
func (s *session) save(name, markdown string) (string, error) {
	if err := os.MkdirAll(s.cfg.Report.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.cfg.Report.OutputDir, name)
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	s.log.Info("report saved", "path", path)
	return path, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
