// Package cmd implements the twicfmt command-line front end: a thin
// wrapper around the twic/decode and twic/encode packages for interactive
// use, following the teacher corpus's habit (see vippsas/sqlcode's
// cli/cmd package) of exposing a text-transforming library as both an
// importable package and a standalone Cobra binary.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "twicfmt",
	Short:         "twicfmt formats and inspects Twic documents",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

// Execute runs the twicfmt root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "logging level (trace, debug, info, warn, error)")
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(getCmd)
}
