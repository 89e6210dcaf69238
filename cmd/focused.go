package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wingman-desktop/wingman/internal/model"
	"github.com/wingman-desktop/wingman/internal/output"
	"github.com/wingman-desktop/wingman/internal/platform"
)

type focusedResult struct {
	TS      int64        `yaml:"ts" json:"ts"`
	Backend string       `yaml:"backend" json:"backend"`
	Window  model.Window `yaml:"window" json:"window"`
}

func (r focusedResult) AgentString() string {
	g := r.Window.Geometry
	return fmt.Sprintf("app=%s pid=%d geom=%d,%d %dx%d backend=%s title=%q",
		r.Window.AppID, r.Window.PID, g.X, g.Y, g.Width, g.Height, r.Backend, r.Window.Title)
}

var focusedCmd = &cobra.Command{
	Use:   "focused",
	Short: "Print the currently focused window",
	Long: `Queries the detection backends in environment order and prints the first
focused window found. Use --backend to query a single backend directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := platform.NewProvider()
		backend, _ := cmd.Flags().GetString("backend")

		var (
			win  *model.Window
			name string
			err  error
		)
		if backend != "" {
			d, derr := provider.Detector(backend)
			if derr != nil {
				return derr
			}
			win, err = d.FocusedWindow()
			name = d.Name()
			if err == nil && win == nil {
				err = platform.ErrNoWindow
			}
		} else {
			win, name, err = provider.FocusedWindow()
		}
		if err != nil {
			return fmt.Errorf("detecting focused window: %w", err)
		}

		return output.Print(focusedResult{
			TS:      time.Now().UnixMilli(),
			Backend: name,
			Window:  *win,
		})
	},
}

func init() {
	focusedCmd.Flags().String("backend", "", "Query a single backend (x11, sway, hyprland, gnome)")
	focusedCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.AddCommand(focusedCmd)
}
