package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/report"
	"github.com/rcliao/theaterlog/internal/share"
)

const (
	shareTitle = "Theaterlog rapport"
	shareText  = "Zie bijgevoegde rapport"
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the CSV report",
		Long: "Generate the four-column CSV report (Voorstelling, Artiest, Score, Notitie) and deliver it. " +
			"The email and auto modes try the platform share capability first and fall back to a plain download.",
		Run: runReport,
	}

	cmd.Flags().StringP("mode", "m", "download", "Delivery mode: download, email or auto")
	cmd.Flags().String("out", "", "Override the export directory")

	RootCmd.AddCommand(cmd)
}

func runReport(cmd *cobra.Command, args []string) {
	mode, _ := cmd.Flags().GetString("mode")
	outDir, _ := cmd.Flags().GetString("out")

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	csv := report.Generate(s.store.Reviews())

	dir := s.cfg.Export.Dir
	if outDir != "" {
		dir = outDir
	}
	saver := share.DirSaver{Dir: dir}
	err = share.Deliver(saver, []byte(csv), report.FileName, report.MimeType,
		share.Mode(mode), shareTitle, shareText, s.log)
	if err != nil {
		exitErr("report", err)
	}

	fmt.Printf(`{"ok":true,"file":%q}`+"\n", report.FileName)
}
