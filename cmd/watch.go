package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wingman-desktop/wingman/internal/platform"
	"github.com/wingman-desktop/wingman/internal/tracker"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream focused-window changes as JSONL",
	Long: `Polls the focused window and emits one JSON object per line whenever the
window stabilises or the focused application changes. A geometry is considered
stable once the same values have been observed for --stable-polls consecutive
polls, which filters out intermediate frames of moves and resizes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		intervalMs, _ := cmd.Flags().GetInt("interval")
		stablePolls, _ := cmd.Flags().GetInt("stable-polls")
		durationSec, _ := cmd.Flags().GetFloat64("duration")
		stableOnly, _ := cmd.Flags().GetBool("stable-only")

		if intervalMs <= 0 {
			return fmt.Errorf("interval must be positive, got %d", intervalMs)
		}
		if stablePolls <= 0 {
			return fmt.Errorf("stable-polls must be positive, got %d", stablePolls)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if durationSec > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(durationSec*float64(time.Second)))
			defer cancel()
		}

		tr := tracker.New(platform.NewProvider(), tracker.Options{
			Interval:    time.Duration(intervalMs) * time.Millisecond,
			StablePolls: stablePolls,
			Log:         log,
		})

		enc := json.NewEncoder(os.Stdout)
		start := time.Now()
		count := 0
		for ev := range tr.Run(ctx) {
			if stableOnly && !ev.Stable {
				continue
			}
			if err := enc.Encode(ev); err != nil {
				return fmt.Errorf("encoding event: %w", err)
			}
			count++
		}

		if err := enc.Encode(map[string]any{
			"type":    "done",
			"events":  count,
			"elapsed": time.Since(start).Seconds(),
		}); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().Int("interval", 100, "Poll interval in milliseconds")
	watchCmd.Flags().Int("stable-polls", 3, "Consecutive identical polls before geometry is stable")
	watchCmd.Flags().Float64("duration", 0, "Stop after this many seconds (0 = run until interrupted)")
	watchCmd.Flags().Bool("stable-only", false, "Only emit stability events, skip app-change events")
	rootCmd.AddCommand(watchCmd)
}
