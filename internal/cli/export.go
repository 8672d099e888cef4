package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/backup"
	"github.com/rcliao/theaterlog/internal/share"
)

// exportFileName is the delivery name of the JSON export.
const exportFileName = "theaterlog.json"

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reviews as JSON",
		Long:  "Export the full log as a pretty-printed JSON array. Prints to stdout, or saves a file with --save.",
		Run:   runExport,
	}

	cmd.Flags().Bool("save", false, "Save to the export directory instead of printing")
	cmd.Flags().Bool("compress", false, "Compress the saved file with zstd (implies --save)")
	cmd.Flags().String("out", "", "Override the export directory")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	save, _ := cmd.Flags().GetBool("save")
	compress, _ := cmd.Flags().GetBool("compress")
	outDir, _ := cmd.Flags().GetString("out")

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	data, err := s.store.ExportJSON()
	if err != nil {
		exitErr("export", err)
	}

	if !save && !compress {
		fmt.Println(string(data))
		return
	}

	filename := exportFileName
	if compress {
		codec, err := backup.NewCodec()
		if err != nil {
			exitErr("export", err)
		}
		data, err = codec.Compress(data)
		if err != nil {
			exitErr("compress", err)
		}
		filename += backup.Extension
	}

	dir := s.cfg.Export.Dir
	if outDir != "" {
		dir = outDir
	}
	saver := share.DirSaver{Dir: dir}
	if err := saver.Download(data, filename, "application/json"); err != nil {
		exitErr("export", err)
	}

	fmt.Printf(`{"ok":true,"file":%q}`+"\n", filename)
}
