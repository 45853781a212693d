package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thomaskoefod/linkedintel/internal/export"
	"github.com/thomaskoefod/linkedintel/internal/logging"
	"github.com/thomaskoefod/linkedintel/internal/report"
)

// SampleDirName is where report --example writes its synthetic export,
// relative to the output directory.
const SampleDirName = "sample_data"

var (
	reportOutput  string
	reportRaw     bool
	reportExample bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the network intelligence report",
	Long: `Score every connection and write network_intelligence_report.md to the
output directory. The report is also printed to stdout.

Use --example to generate a small synthetic export and analyse that instead.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output directory (default from config)")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "print markdown instead of rendering it")
	reportCmd.Flags().BoolVar(&reportExample, "example", false, "analyse a generated sample export")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reportOutput != "" {
		cfg.Report.OutputDir = reportOutput
	}
	log := logging.New(cfg.Logging.Level, cmd.ErrOrStderr())

	if reportExample {
		dir := filepath.Join(cfg.Report.OutputDir, SampleDirName)
		if err := export.WriteSample(dir); err != nil {
			return err
		}
		log.Info("sample export generated", "dir", dir)
		cfg.Export.DataDir = dir
		cfg.Identity.Self = export.SampleSelf
	}

	s, err := openSession(cfg, log)
	if err != nil {
		return err
	}

	ov, err := s.analyzer.Overview(commandContext(cmd), cfg.Report.TopN)
	if err != nil {
		return fmt.Errorf("analysing network: %w", err)
	}
	md := report.Network(ov, s.analyzer.Now())

	if _, err := s.save(report.NetworkFilename, md); err != nil {
		return err
	}
	return s.print(cmd.OutOrStdout(), md, reportRaw)
}
