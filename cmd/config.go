package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wingman-desktop/wingman/internal/config"
	"github.com/wingman-desktop/wingman/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit wingman settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigOrDefault(configFlagPath(cmd))
		if err != nil {
			return err
		}
		return output.Print(cfg)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting by its JSON key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigOrDefault(configFlagPath(cmd))
		if err != nil {
			return err
		}
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting and write the config file",
	Long: `Sets a single setting by its JSON key and saves the file. List values
take comma-separated items (doc_sources=man,help); url_patterns takes
comma-separated name=url pairs.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFlagPath(cmd)
		if path == "" {
			path = config.Path()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		log.WithField("key", args[0]).Debug("config updated")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.Path())
	},
}

func configFlagPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

func init() {
	configCmd.PersistentFlags().String("config", "", "Config file path (default: XDG config dir)")
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
