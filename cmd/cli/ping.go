package main

import (
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the review server is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		greeting, err := c.Ping(cmd.Context())
		if err != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "✓ %s\n", greeting)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(pingCmd)
}
