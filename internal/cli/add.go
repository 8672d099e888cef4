package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a review",
		Long:  "Add a theater-visit entry. A candidate whose title and calendar day match an existing entry is skipped.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("title", "t", "", "Show title (required)")
	cmd.Flags().String("director", "", "Director or artist")
	cmd.Flags().StringP("location", "l", "", "Venue")
	cmd.Flags().Bool("last-location", false, "Use the remembered last location")
	cmd.Flags().String("info", "", "Extra info, may hold a URL")
	cmd.Flags().String("body", "", "Notes or review text")
	cmd.Flags().String("date", "", "Visit date (e.g. 2024-10-12); empty means unscheduled")
	cmd.Flags().String("tags", "", "Comma-separated tags")
	cmd.Flags().IntP("rating", "r", 0, "Rating 0-5 (0 = unrated)")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	director, _ := cmd.Flags().GetString("director")
	location, _ := cmd.Flags().GetString("location")
	lastLocation, _ := cmd.Flags().GetBool("last-location")
	info, _ := cmd.Flags().GetString("info")
	body, _ := cmd.Flags().GetString("body")
	dateStr, _ := cmd.Flags().GetString("date")
	tagsStr, _ := cmd.Flags().GetString("tags")
	rating, _ := cmd.Flags().GetInt("rating")

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if location == "" && lastLocation {
		location = s.store.LastLocation()
	}

	var date int64
	if dateStr != "" {
		date = store.ParseDateString(dateStr, time.Now())
		if date == 0 {
			exitErr("add", fmt.Errorf("unrecognized date %q", dateStr))
		}
	}

	r, err := s.store.Create(store.CreateParams{
		Title:    title,
		Director: director,
		Location: location,
		Info:     info,
		Body:     body,
		Date:     date,
		Tags:     store.SplitTags(tagsStr),
		Rating:   rating,
	})
	if errors.Is(err, store.ErrDuplicate) {
		fmt.Println(`{"ok":false,"reason":"duplicate"}`)
		return
	}
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.Marshal(r)
	fmt.Println(string(b))
}
