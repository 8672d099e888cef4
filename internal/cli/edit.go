package cli

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a review",
		Long:  "Replace fields on an existing entry. Only the given flags are applied; other fields keep their value.",
		Args:  cobra.ExactArgs(1),
		Run:   runEdit,
	}

	cmd.Flags().StringP("title", "t", "", "Show title")
	cmd.Flags().String("director", "", "Director or artist")
	cmd.Flags().StringP("location", "l", "", "Venue")
	cmd.Flags().String("info", "", "Extra info")
	cmd.Flags().String("body", "", "Notes or review text")
	cmd.Flags().String("date", "", "Visit date; \"none\" clears it")
	cmd.Flags().String("tags", "", "Comma-separated tags")
	cmd.Flags().IntP("rating", "r", 0, "Rating 0-5")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	id := args[0]

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if s.store.Get(id) == nil {
		exitErr("edit", fmt.Errorf("review not found: %s", id))
	}

	var p store.UpdateParams
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		p.Title = &v
	}
	if cmd.Flags().Changed("director") {
		v, _ := cmd.Flags().GetString("director")
		p.Director = &v
	}
	if cmd.Flags().Changed("location") {
		v, _ := cmd.Flags().GetString("location")
		p.Location = &v
	}
	if cmd.Flags().Changed("info") {
		v, _ := cmd.Flags().GetString("info")
		p.Info = &v
	}
	if cmd.Flags().Changed("body") {
		v, _ := cmd.Flags().GetString("body")
		p.Body = &v
	}
	if cmd.Flags().Changed("date") {
		v, _ := cmd.Flags().GetString("date")
		var millis int64
		if v != "" && v != "none" {
			millis = store.ParseDateString(v, time.Now())
			if millis == 0 {
				exitErr("edit", fmt.Errorf("unrecognized date %q", v))
			}
		}
		p.Date = &millis
	}
	if cmd.Flags().Changed("tags") {
		v, _ := cmd.Flags().GetString("tags")
		tags := store.SplitTags(v)
		p.Tags = &tags
	}
	if cmd.Flags().Changed("rating") {
		v, _ := cmd.Flags().GetInt("rating")
		p.Rating = &v
	}

	if err := s.store.Update(id, p); err != nil {
		exitErr("edit", err)
	}

	b, _ := json.Marshal(s.store.Get(id))
	fmt.Println(string(b))
}
