package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/theaterlog/internal/fetch"
	"github.com/rcliao/theaterlog/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "discover [query]",
		Short: "Fetch show listings from the web",
		Long: "Resolve a free-text query (\"city venue name\", \"city/venue-slug\" or a full URL) to a listing page, " +
			"fetch its readable text through the reader proxy and parse it into candidate shows.",
		Args: cobra.MinimumNArgs(1),
		Run:  runDiscover,
	}

	cmd.Flags().Bool("import", false, "Merge the found shows into the log")

	RootCmd.AddCommand(cmd)
}

func runDiscover(cmd *cobra.Command, args []string) {
	doImport, _ := cmd.Flags().GetBool("import")
	query := strings.Join(args, " ")

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	client := fetch.NewClient(fetch.Config{
		ReaderURL:  s.cfg.Listing.ReaderURL,
		SiteURL:    s.cfg.Listing.SiteURL,
		Blacklist:  s.cfg.Listing.Blacklist,
		MaxResults: s.cfg.Listing.MaxResults,
		MinContent: s.cfg.Listing.MinContent,
		Timeout:    time.Duration(s.cfg.Listing.TimeoutSeconds) * time.Second,
	}, s.log)

	listings, err := client.Search(cmd.Context(), query)
	if err != nil {
		exitErr("discover", err)
	}

	if !doImport {
		b, _ := json.MarshalIndent(listings, "", "  ")
		fmt.Println(string(b))
		return
	}

	candidates := make([]store.Candidate, 0, len(listings))
	for _, l := range listings {
		candidates = append(candidates, store.CandidateFromListing(l, query))
	}
	res := s.store.ImportCandidates(candidates)

	b, _ := json.Marshal(res)
	fmt.Println(string(b))
}
