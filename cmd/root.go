package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wingman-desktop/wingman/internal/output"
	"github.com/wingman-desktop/wingman/internal/version"
)

// log is the shared diagnostics logger. It writes to stderr so stdout
// stays machine-parseable for the streaming commands.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "wingman",
	Short: "Track the focused window and fetch contextual documentation",
	Long: `Wingman follows the currently focused window across X11 and Wayland
compositors and computes where a tracking panel should sit, with contextual
documentation (man pages / --help output) for the detected application.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json, agent")
	rootCmd.PersistentFlags().Bool("raw", false, "Disable all smart defaults (auto-format)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging on stderr")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		}

		raw, _ := rootCmd.PersistentFlags().GetBool("raw")
		output.RawMode = raw

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")

		// Smart default: piped output (agent context) → agent format,
		// terminal output (human) → yaml.
		if format == "" {
			if !raw && output.IsOutputPiped() {
				format = "agent"
			} else {
				format = "yaml"
			}
		}

		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		case "agent":
			output.OutputFormat = output.FormatAgent
		default:
			return fmt.Errorf("unsupported format: %s (use yaml, json, or agent)", format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}
