package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thomaskoefod/linkedintel/internal/logging"
	"github.com/thomaskoefod/linkedintel/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse the scored network interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// stderr shares the terminal with the alt screen.
		s, err := openSession(cfg, logging.New(cfg.Logging.Level, io.Discard))
		if err != nil {
			return err
		}
		return tui.Run(s.cfg, s.analyzer)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
