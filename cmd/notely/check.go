package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"example.com/notely-web/internal/api"
)

var checkTimeout time.Duration

// checkCmd verifies the upstream is reachable by reading the public notes.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the upstream notes API answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()

		c := api.New(cfg.APIBaseURL, api.WithLogger(log))
		list, err := c.ListPublicNotes(ctx)
		if err != nil {
			return fmt.Errorf("upstream %s: %w", c.BaseURL(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "upstream %s ok, %d public notes\n", c.BaseURL(), len(list))
		return nil
	},
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Second, "How long to wait for the upstream")
	rootCmd.AddCommand(checkCmd)
}
