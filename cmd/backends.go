package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wingman-desktop/wingman/internal/output"
	"github.com/wingman-desktop/wingman/internal/platform"
)

type backendInfo struct {
	Order     int    `yaml:"order" json:"order"`
	Name      string `yaml:"name" json:"name"`
	Available bool   `yaml:"available" json:"available"`
}

type backendList struct {
	Backends []backendInfo `yaml:"backends" json:"backends"`
}

func (l backendList) AgentString() string {
	parts := make([]string, 0, len(l.Backends))
	for _, b := range l.Backends {
		state := "unavailable"
		if b.Available {
			state = "available"
		}
		parts = append(parts, fmt.Sprintf("%d:%s(%s)", b.Order, b.Name, state))
	}
	return strings.Join(parts, " ")
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List detection backends in fallback order",
	Long: `Shows the backend chain derived from the current environment
(WAYLAND_DISPLAY, HYPRLAND_INSTANCE_SIGNATURE, XDG_CURRENT_DESKTOP, SWAYSOCK,
DISPLAY) and whether each backend is usable right now.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := platform.NewProvider()

		list := backendList{}
		for i, d := range provider.Detectors() {
			list.Backends = append(list.Backends, backendInfo{
				Order:     i,
				Name:      d.Name(),
				Available: d.Available(),
			})
		}
		return output.Print(list)
	},
}

func init() {
	backendsCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.AddCommand(backendsCmd)
}
