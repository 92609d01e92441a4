package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/render"
	"github.com/sevigo/snippet-review/internal/server/handler"
)

var (
	concurrency int
	rawOutput   bool
	style       string
)

var submitCmd = &cobra.Command{
	Use:   "submit [file...|-]",
	Short: "Submit code snippets for review",
	Long: `Submit one or more files for review. Each file becomes one snippet.
With no arguments, or with "-", the snippet is read from stdin.

Examples:
  reviewctl submit main.py
  reviewctl submit --concurrency 2 a.go b.go c.go
  cat util.js | reviewctl submit -`,
	RunE: runSubmit,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	submitCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "Maximum number of reviews in flight")
	submitCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print feedback as plain text")
	submitCmd.Flags().StringVar(&style, "style", "auto", "Markdown style: "+strings.Join(render.Styles, ", "))
	rootCmd.AddCommand(submitCmd)
}

type source struct {
	name string
	code string
}

type submitResult struct {
	source source
	resp   *handler.ReviewResponse
}

func runSubmit(cmd *cobra.Command, args []string) error {
	sources, err := readSources(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	results := make([]submitResult, len(sources))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(concurrency, 1))
	for i, src := range sources {
		g.Go(func() error {
			resp, err := c.Submit(ctx, src.code)
			if err != nil {
				return fmt.Errorf("%s: %w", src.name, err)
			}
			results[i] = submitResult{source: src, resp: resp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errorColor.Fprintf(os.Stderr, "✗ %v\n", err)
		return err
	}

	degraded := 0
	for _, res := range results {
		if res.resp.Status == core.StatusDegraded {
			degraded++
		}
		printResult(cmd.OutOrStdout(), res)
	}

	if len(results) > 1 {
		fmt.Fprintln(cmd.OutOrStdout())
		if degraded > 0 {
			warnColor.Fprintf(cmd.OutOrStdout(), "%d of %d reviews degraded\n", degraded, len(results))
		} else {
			successColor.Fprintf(cmd.OutOrStdout(), "✓ %d reviews stored\n", len(results))
		}
	}
	return nil
}

func readSources(args []string, stdin io.Reader) ([]source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	sources := make([]source, 0, len(args))
	usedStdin := false
	for _, arg := range args {
		if arg == "-" {
			if usedStdin {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			usedStdin = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			sources = append(sources, source{name: "stdin", code: string(data)})
			continue
		}

		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		sources = append(sources, source{name: arg, code: string(data)})
	}
	return sources, nil
}

func printResult(w io.Writer, res submitResult) {
	fmt.Fprintln(w)
	titleColor.Fprintf(w, "%s", res.source.name)
	dimColor.Fprintf(w, "  snippet %d, review %d\n", res.resp.SnippetID, res.resp.ReviewID)

	if res.resp.Status == core.StatusDegraded {
		warnColor.Fprintln(w, res.resp.Feedback)
		return
	}
	if rawOutput {
		fmt.Fprintln(w, res.resp.Feedback)
		return
	}
	fmt.Fprintln(w, render.Markdown(res.resp.Feedback, style, 100))
}
