package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thomaskoefod/linkedintel/internal/report"
)

var warmPathRaw bool

var warmPathCmd = &cobra.Command{
	Use:   "warm-path <company>",
	Short: "Find warm introduction paths into a company",
	Long: `List every connection whose company contains the given name, ranked by
strength plus vouch score, with a suggested approach for each.

The report is saved as warm_path_<company>.md in the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWarmPath,
}

func init() {
	rootCmd.AddCommand(warmPathCmd)

	warmPathCmd.Flags().BoolVar(&warmPathRaw, "raw", false, "print markdown instead of rendering it")
}

func runWarmPath(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	target := strings.Join(args, " ")
	res, err := s.analyzer.WarmPaths(commandContext(cmd), target)
	if err != nil {
		return err
	}
	s.log.Info("warm paths found", "target", target, "paths", len(res.Paths))

	md := report.WarmPath(res, s.analyzer.Now())
	if _, err := s.save(report.WarmPathFilename(target), md); err != nil {
		return err
	}
	return s.print(cmd.OutOrStdout(), md, warmPathRaw)
}
