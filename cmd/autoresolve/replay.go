package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autoresolve-sim/internal/logging"
	"autoresolve-sim/internal/report"
)

var (
	replayInput     string
	replaySpeed     float64
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a battle report file",
	Long:  "replay feeds report rows from a log file back into GreptimeDB or STDOUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer, cleanup, err := newWriters(writerOptions{
			Title:     "Replay " + replayInput,
			PrintOnly: replayPrintOnly,
			Log:       logging.New("info"),
		})
		if err != nil {
			return err
		}
		defer cleanup()
		return report.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to battle report file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print the report to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
