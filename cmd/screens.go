package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wingman-desktop/wingman/internal/model"
	"github.com/wingman-desktop/wingman/internal/output"
	"github.com/wingman-desktop/wingman/internal/platform"
)

type screenList struct {
	Backend string         `yaml:"backend" json:"backend"`
	Screens []model.Screen `yaml:"screens" json:"screens"`
}

func (l screenList) AgentString() string {
	parts := make([]string, 0, len(l.Screens))
	for _, s := range l.Screens {
		mark := ""
		if s.Primary {
			mark = "*"
		}
		parts = append(parts, fmt.Sprintf("%s%s=%d,%d %dx%d",
			s.Name, mark, s.Bounds.X, s.Bounds.Y, s.Bounds.Width, s.Bounds.Height))
	}
	return strings.Join(parts, " ")
}

var screensCmd = &cobra.Command{
	Use:   "screens",
	Short: "List connected screens and their geometry",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := platform.NewProvider()
		screens, backend, err := provider.Screens()
		if err != nil {
			return fmt.Errorf("listing screens: %w", err)
		}
		return output.Print(screenList{Backend: backend, Screens: screens})
	},
}

func init() {
	screensCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.AddCommand(screensCmd)
}
