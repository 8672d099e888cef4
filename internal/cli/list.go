package cli

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/model"
	"github.com/rcliao/theaterlog/internal/store"
)

// reviewRow is a review with its computed status attached for display.
// Status is derived at render time, never stored.
type reviewRow struct {
	model.Review
	Status model.Status `json:"status"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		Long:  "List reviews with an optional free-text filter, tag filter and sort mode.",
		Run:   runList,
	}

	cmd.Flags().String("filter", "", "Free-text filter across title, director, location, info, body and tags")
	cmd.Flags().StringP("tag", "t", "", "Keep only reviews carrying this exact tag")
	cmd.Flags().StringP("sort", "s", "newest", "Sort mode: newest, oldest or rating")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	filter, _ := cmd.Flags().GetString("filter")
	tag, _ := cmd.Flags().GetString("tag")
	sortBy, _ := cmd.Flags().GetString("sort")

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	reviews := s.store.Query(store.QueryParams{
		FilterText: filter,
		FilterTag:  tag,
		SortBy:     store.SortMode(sortBy),
	})

	now := time.Now()
	rows := make([]reviewRow, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, reviewRow{Review: r, Status: store.ComputeStatus(r, now)})
	}

	if formatFlag == "text" {
		for _, row := range rows {
			date := "-"
			if row.Date != 0 {
				date = time.UnixMilli(row.Date).Local().Format("2006-01-02")
			}
			fmt.Printf("%s  %-10s  %s  %d/5  %s\n", row.ID, date, row.Status, row.Rating, row.Title)
		}
		return
	}

	b, _ := json.MarshalIndent(rows, "", "  ")
	fmt.Println(string(b))
}
