package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thomaskoefod/linkedintel/internal/report"
)

var (
	scoreJSON bool
	scoreRaw  bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <name>",
	Short: "Show the relationship score for one connection",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the score as JSON")
	scoreCmd.Flags().BoolVar(&scoreRaw, "raw", false, "print markdown instead of rendering it")
}

func runScore(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	score, ok := s.analyzer.Lookup(name)
	if !ok {
		return fmt.Errorf("no connection named %q", name)
	}

	if scoreJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(score)
	}
	return s.print(cmd.OutOrStdout(), report.Person(score), scoreRaw)
}
