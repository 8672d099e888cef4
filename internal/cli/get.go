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
		Use:   "get [id]",
		Short: "Retrieve a review",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	id := args[0]

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	r := s.store.Get(id)
	if r == nil {
		exitErr("get", fmt.Errorf("review not found: %s", id))
	}

	out := reviewRow{Review: *r, Status: store.ComputeStatus(*r, time.Now())}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
