package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/ics"
	"github.com/rcliao/theaterlog/internal/share"
)

func init() {
	cmd := &cobra.Command{
		Use:   "calendar [id]",
		Short: "Save a calendar file for a review",
		Long:  "Write a minimal .ics calendar event for one entry. Unscheduled entries are placed at the current time.",
		Args:  cobra.ExactArgs(1),
		Run:   runCalendar,
	}

	cmd.Flags().String("out", "", "Override the export directory")

	RootCmd.AddCommand(cmd)
}

func runCalendar(cmd *cobra.Command, args []string) {
	id := args[0]
	outDir, _ := cmd.Flags().GetString("out")

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	r := s.store.Get(id)
	if r == nil {
		exitErr("calendar", fmt.Errorf("review not found: %s", id))
	}

	dir := s.cfg.Export.Dir
	if outDir != "" {
		dir = outDir
	}
	filename := ics.FileName(r.Title)
	saver := share.DirSaver{Dir: dir}
	if err := saver.Download(ics.Event(*r, time.Now()), filename, ics.MimeType); err != nil {
		exitErr("calendar", err)
	}

	fmt.Printf(`{"ok":true,"file":%q}`+"\n", filename)
}
