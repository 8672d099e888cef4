package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/backup"
	"github.com/rcliao/theaterlog/internal/report"
	"github.com/rcliao/theaterlog/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import reviews from JSON or CSV",
		Long: "Merge reviews from a file or stdin into the log, skipping duplicates. " +
			"JSON accepts a bare array or an object with a \"reviews\" array; CSV expects the report schema. " +
			"Compressed exports (.zst) are unpacked transparently.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	cmd.Flags().Bool("csv", false, "Treat the input as CSV regardless of file extension")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	asCSV, _ := cmd.Flags().GetBool("csv")

	var data []byte
	var name string
	var err error
	if len(args) > 0 {
		name = args[0]
		data, err = os.ReadFile(name)
		if err != nil {
			exitErr("read file", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
	}

	if strings.HasSuffix(name, backup.Extension) {
		codec, err := backup.NewCodec()
		if err != nil {
			exitErr("import", err)
		}
		data, err = codec.Decompress(data)
		if err != nil {
			exitErr("decompress", err)
		}
		name = strings.TrimSuffix(name, backup.Extension)
	}

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var res store.ImportResult
	if asCSV || strings.HasSuffix(strings.ToLower(name), ".csv") {
		rows := report.Candidates(report.Parse(string(data)))
		candidates := make([]store.Candidate, 0, len(rows))
		for _, row := range rows {
			candidates = append(candidates, store.Candidate{
				Title:    row.Title,
				Director: row.Director,
				Body:     row.Body,
				Rating:   store.LooseRating(row.Rating),
			})
		}
		res = s.store.ImportCandidates(candidates)
	} else {
		items, err := store.DecodeCandidates(data)
		if err != nil {
			exitErr("parse json", err)
		}
		res = s.store.ImportRaw(items)
	}

	b, _ := json.Marshal(res)
	fmt.Println(string(b))
}
