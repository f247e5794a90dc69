package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long:  `Display the effective configuration (file merged over defaults).`,
	RunE:  runConfig,
}

var validateOnly bool

func init() {
	configCmd.Flags().BoolVar(&validateOnly, "validate", false, "only validate config, don't print")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Load validates.
	cfg, err := loadConfig()
	if err != nil {
		if jsonOut {
			writeJSON(out, map[string]any{"valid": false, "error": err.Error()})
		} else {
			fmt.Fprintf(out, "Configuration invalid: %v\n", err)
		}
		return err
	}

	if validateOnly {
		if jsonOut {
			return writeJSON(out, map[string]any{"valid": true})
		}
		fmt.Fprintln(out, "Configuration is valid")
		return nil
	}

	if jsonOut {
		return writeJSON(out, cfg)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(data))
	return nil
}
