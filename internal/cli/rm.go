package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a review",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	id := args[0]

	s, err := openSession()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if s.store.Get(id) == nil {
		exitErr("rm", fmt.Errorf("review not found: %s", id))
	}

	s.store.Delete(id)
	fmt.Printf(`{"ok":true,"id":%q}`+"\n", id)
}
