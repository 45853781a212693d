package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thomaskoefod/linkedintel/internal/export"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [dir]",
	Short: "Write a synthetic LinkedIn export",
	Long: `Write a small synthetic export (ten connections with messages,
endorsements and a recommendation) for trying the other commands.

The messages use "Me" for the exporting user, which is the default --self.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	dir := SampleDirName
	if len(args) == 1 {
		dir = args[0]
	}
	if err := export.WriteSample(dir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sample export written to %s\n", dir)
	return nil
}
