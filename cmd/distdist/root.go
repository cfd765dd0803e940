package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/distdist/internal/log"
	"github.com/spf13/cobra"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// errInvalidLogFormat is returned for an unknown --log-format value.
var errInvalidLogFormat = errors.New("log format must be text or json")

// NewRootCmd creates the root command for distdist.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distdist",
		Short: "Distance and rotation period analysis of Taurus-Auriga stars",
		Long: `distdist splits catalogued Taurus-Auriga stars into a near group
(closer than 150 pc) and a far group (farther than 150 pc), prints both groups,
reports the mean rotation period of the near group and draws a two-panel
histogram of rotation periods and distances.

Distances are from Fleming et al. (2019), rotation periods from
Rebull et al. (2004).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", logFormatText, "Log output format: text or json")

	cmd.AddCommand(NewPlotCmd())
	cmd.AddCommand(NewStarsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogFormatFlag retrieves the log format from the command or the root.
func getLogFormatFlag(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format, err = cmd.Root().PersistentFlags().GetString("log-format")
		if err != nil {
			return logFormatText
		}
	}
	return format
}

// setupLogger creates the application logger and installs it as the default.
func setupLogger(cmd *cobra.Command) (*slog.Logger, error) {
	verbose := getVerboseFlag(cmd)

	var logger *slog.Logger
	switch format := getLogFormatFlag(cmd); format {
	case logFormatText:
		logger = log.NewLogger(cmd.ErrOrStderr(), verbose)
	case logFormatJSON:
		logger = log.NewJSONLogger(cmd.ErrOrStderr(), verbose)
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidLogFormat, format)
	}

	slog.SetDefault(logger)
	return logger, nil
}
