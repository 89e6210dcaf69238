package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wingman-desktop/wingman/internal/config"
	"github.com/wingman-desktop/wingman/internal/docs"
	"github.com/wingman-desktop/wingman/internal/output"
	"github.com/wingman-desktop/wingman/internal/platform"
)

var docsCmd = &cobra.Command{
	Use:   "docs [command]",
	Short: "Fetch documentation for a command or the focused application",
	Long: `Retrieves documentation by trying each configured source in order: man
page, --help output, then an online lookup. With no argument the focused
window's application is documented instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		sourcesFlag, _ := cmd.Flags().GetString("source")
		timeoutSec, _ := cmd.Flags().GetFloat64("timeout")
		text, _ := cmd.Flags().GetBool("text")

		cfg, err := loadConfigOrDefault(configPath)
		if err != nil {
			return err
		}

		sources := cfg.DocSources
		if sourcesFlag != "" {
			sources = splitCommaList(sourcesFlag)
			for _, s := range sources {
				switch s {
				case docs.SourceMan, docs.SourceHelp, docs.SourceOnline:
				default:
					return fmt.Errorf("unknown documentation source: %s (use man, help, or online)", s)
				}
			}
		}

		retriever := docs.New(sources, cfg.URLPatterns)
		if timeoutSec > 0 {
			retriever.Timeout = time.Duration(timeoutSec * float64(time.Second))
		}

		var command string
		if len(args) == 1 {
			command = args[0]
		} else {
			win, _, err := platform.NewProvider().FocusedWindow()
			if err != nil {
				return fmt.Errorf("detecting focused window: %w", err)
			}
			command = win.AppID
			if command == "" {
				command = win.ProcessName
			}
		}

		result := retriever.Get(cmd.Context(), command)
		if text {
			fmt.Println(docs.FormatDocumentation(result))
			return nil
		}
		return output.Print(result)
	},
}

func loadConfigOrDefault(path string) (config.Config, error) {
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	docsCmd.Flags().String("config", "", "Config file path (default: XDG config dir)")
	docsCmd.Flags().String("source", "", "Comma-separated source order (man, help, online)")
	docsCmd.Flags().Float64("timeout", 0, "Per-source timeout in seconds")
	docsCmd.Flags().Bool("text", false, "Print rendered documentation text instead of structured output")
	docsCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.AddCommand(docsCmd)
}
