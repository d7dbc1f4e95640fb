// notesctl is a small admin CLI for poking a running notes-service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL string
	token  string
)

func main() {
	root := &cobra.Command{
		Use:           "notesctl",
		Short:         "Admin CLI for the notes backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "base URL of the notes-service")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("NOTES_TOKEN"), "bearer token (defaults to $NOTES_TOKEN)")

	root.AddCommand(newHealthCmd(), newLoginCmd(), newNotesCmd(), newTodosCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
