package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/store"
)

type statsOut struct {
	DBPath      string `json:"db_path"`
	DBSizeBytes int64  `json:"db_size_bytes"`
	store.Stats
}

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show log statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	out := statsOut{
		DBPath: s.cfg.Storage.Path,
		Stats:  s.store.Stats(time.Now()),
	}
	if info, err := os.Stat(s.cfg.Storage.Path); err == nil {
		out.DBSizeBytes = info.Size()
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
