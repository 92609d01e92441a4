package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/snippet-review/internal/client"
	"github.com/sevigo/snippet-review/internal/core"
)

var outputFormat string

var showCmd = &cobra.Command{
	Use:   "show <snippet-id>",
	Short: "Show a stored snippet and its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid snippet id %q", args[0])
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		detail, err := c.Snippet(cmd.Context(), id)
		if err != nil {
			if client.IsNotFound(err) {
				return fmt.Errorf("snippet %d does not exist", id)
			}
			return err
		}
		return writeDetail(cmd.OutOrStdout(), detail, outputFormat)
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	showCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(showCmd)
}

func writeDetail(w io.Writer, detail *core.SnippetDetail, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(detail)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(detail); err != nil {
			return err
		}
		return encoder.Close()
	case "text":
		titleColor.Fprintf(w, "Snippet %d", detail.Snippet.ID)
		dimColor.Fprintf(w, "  %s\n\n", detail.Snippet.CreatedAt.Local().Format(time.RFC822))
		fmt.Fprintln(w, detail.Snippet.Code)

		if len(detail.Reviews) == 0 {
			fmt.Fprintln(w)
			warnColor.Fprintln(w, "No reviews stored for this snippet.")
			return nil
		}
		for _, r := range detail.Reviews {
			fmt.Fprintln(w)
			boldColor.Fprintf(w, "Review %d", r.ID)
			dimColor.Fprintf(w, "  %s  %s\n", r.Status, r.CreatedAt.Local().Format(time.RFC822))
			if r.Status == core.StatusDegraded {
				warnColor.Fprintln(w, r.Feedback)
			} else {
				fmt.Fprintln(w, r.Feedback)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
