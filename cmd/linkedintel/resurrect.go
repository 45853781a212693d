package main

import (
	"github.com/spf13/cobra"

	"github.com/thomaskoefod/linkedintel/internal/report"
)

var resurrectRaw bool

var resurrectCmd = &cobra.Command{
	Use:   "resurrect",
	Short: "List dormant conversations worth reviving",
	Long: `Find conversations older than 90 days in which someone promised to catch
up, most recent first.`,
	Args: cobra.NoArgs,
	RunE: runResurrect,
}

func init() {
	rootCmd.AddCommand(resurrectCmd)

	resurrectCmd.Flags().BoolVar(&resurrectRaw, "raw", false, "print markdown instead of rendering it")
}

func runResurrect(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	opps, err := s.analyzer.Resurrections(commandContext(cmd))
	if err != nil {
		return err
	}
	return s.print(cmd.OutOrStdout(), report.Resurrections(opps), resurrectRaw)
}
