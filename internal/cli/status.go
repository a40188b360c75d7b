package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/WaClaw/WaClaw/internal/config"
	"github.com/WaClaw/WaClaw/internal/timeline"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent gateway tasks",
	Run:   runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 20, "Number of tasks to show")
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}

	timeSvc, err := timeline.New(cfg.Timeline.Path)
	if err != nil {
		fmt.Printf("Failed to open timeline: %v\n", err)
		os.Exit(1)
	}
	defer timeSvc.Close()

	tasks, err := timeSvc.Recent(statusLimit)
	if err != nil {
		fmt.Printf("Failed to query tasks: %v\n", err)
		os.Exit(1)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks recorded yet.")
		return
	}

	for _, t := range tasks {
		status := t.Status
		switch status {
		case timeline.StatusCompleted:
			status = color.GreenString(status)
		case timeline.StatusFailed:
			status = color.RedString(status)
		default:
			status = color.YellowString(status)
		}
		fmt.Printf("%s  %-9s %-8s %-15s %s\n",
			t.CreatedAt.Format("2006-01-02 15:04:05"), status, t.Role, t.SenderID, truncate(t.ContentIn, 48))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
