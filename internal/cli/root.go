package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	host    string
	port    int
	jsonOut bool
	verbose bool

	// Version info (set from main)
	Version = "0.1.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "studentperf",
	Short: "Student performance prediction and decision support",
	Long: `studentperf trains regression models on student records (attendance,
study hours, internal marks), keeps the best one and uses it to predict
final marks, classify academic risk and recommend improvements.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default studentperf.yaml)")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "server host (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 0, "server port (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}
