package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Make the running server load the latest model",
	Long:  `Send SIGHUP to the server named in the PID file so it reloads the model artifact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return signalServer(cmd, syscall.SIGHUP, "reload_requested")
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running server",
	Long:  `Send SIGTERM to the server named in the PID file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return signalServer(cmd, syscall.SIGTERM, "stop_requested")
	},
}

var pidFile string

func init() {
	for _, c := range []*cobra.Command{reloadCmd, stopCmd} {
		c.Flags().StringVar(&pidFile, "pid-file", "", "PID file path (overrides config)")
		rootCmd.AddCommand(c)
	}
}

func signalServer(cmd *cobra.Command, sig syscall.Signal, status string) error {
	pidPath := pidFile
	if pidPath == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pidPath = cfg.Server.PIDFile
	}

	pid, err := readPIDFile(pidPath)
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("process not found: %d", pid)
	}
	if err := process.Signal(sig); err != nil {
		return fmt.Errorf("failed to send signal: %w", err)
	}

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"status": status, "pid": pid})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to process %d\n", sig, pid)
	return nil
}

func readPIDFile(path string) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("no PID file specified (use --pid-file or set server.pid_file)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("PID file not found: %s (server may not be running)", path)
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID in file: %s", pidStr)
	}
	return pid, nil
}
