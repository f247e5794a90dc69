package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/server"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running server",
	Long:  `Query the running server for its model, history and host resources.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	serverAddr(cmd, cfg)

	var status server.StatusResponse
	if err := NewClient(cfg).GetJSON("/status", &status); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), status)
	}
	printStatus(cmd.OutOrStdout(), &status)
	return nil
}

func printStatus(w io.Writer, s *server.StatusResponse) {
	fmt.Fprintln(w, "=== Server Status ===")
	fmt.Fprintf(w, "Uptime:        %s\n", s.Uptime)
	fmt.Fprintf(w, "Model loaded:  %t\n", s.ModelLoaded)
	if s.History.Error != "" {
		fmt.Fprintf(w, "History:       unreadable (%s)\n", s.History.Error)
	} else {
		fmt.Fprintf(w, "History:       %s records\n", humanize.Comma(int64(s.History.Records)))
	}

	if s.Artifacts != nil {
		fmt.Fprintln(w, "\nArtifacts:")
		printFileInfo(w, "model", s.Artifacts.Model)
		printFileInfo(w, "scaler", s.Artifacts.Scaler)
	}

	if r := s.Retrain; r != nil {
		fmt.Fprintln(w, "\nRetraining:")
		fmt.Fprintf(w, "  Every %s, %s runs\n", r.Interval, humanize.Comma(r.RetrainCount))
		if !r.LastRetrain.IsZero() {
			fmt.Fprintf(w, "  Last:    %s (%s)\n", r.LastModel, humanize.Time(r.LastRetrain))
		}
		if r.LastError != "" {
			fmt.Fprintf(w, "  Error:   %s\n", r.LastError)
		}
	}

	if h := s.Host; h != nil {
		fmt.Fprintln(w, "\nHost:")
		fmt.Fprintf(w, "  CPU:     %.1f%% of %d cores\n", h.CPU.UsagePercent, h.CPU.LogicalCores)
		fmt.Fprintf(w, "  Memory:  %s / %s (%.1f%%)\n",
			humanize.IBytes(h.Memory.UsedBytes), humanize.IBytes(h.Memory.TotalBytes), h.Memory.UsagePercent)
		fmt.Fprintf(w, "  Process: pid %d, %s RSS, %d threads\n",
			h.Process.PID, humanize.IBytes(h.Process.RSSBytes), h.Process.Threads)

		paths := make([]string, 0, len(h.Storage))
		for path := range h.Storage {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			d := h.Storage[path]
			fmt.Fprintf(w, "  Disk %s: %s free of %s\n", path, humanize.IBytes(d.FreeBytes), humanize.IBytes(d.TotalBytes))
		}
	}
}

func printFileInfo(w io.Writer, label string, f artifact.FileInfo) {
	if !f.Exists {
		fmt.Fprintf(w, "  %-7s %s (missing)\n", label+":", f.Path)
		return
	}
	fmt.Fprintf(w, "  %-7s %s, %s, updated %s\n",
		label+":", f.Path, humanize.Bytes(uint64(f.Size)), humanize.Time(f.UpdatedAt))
}
