package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ejagojo/SecureVibe/internal/output"
	"github.com/ejagojo/SecureVibe/internal/scanner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const stdinArg = "-"

type scanOptions struct {
	configPath string
	outputType string
	outputFile string
	failOn     string
	noFail     bool
	quiet      bool
	threads    int
}

// scanResult holds the findings for one input, in argument order.
type scanResult struct {
	name     string
	findings []scanner.Finding
}

func newScanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Scan files or stdin for security issues",
		Long:  `Scan one or more files for exposed credentials and missing input validation. With no arguments, or "-", reads from stdin.`,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", scanner.DefaultConfigPath(), "path to configuration file")
	cmd.Flags().StringVarP(&opts.outputType, "type", "t", "", "output type (console, table, json, sarif)")
	cmd.Flags().StringVarP(&opts.outputFile, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.failOn, "fail-on", "", "minimum severity that fails the run (low, medium, high)")
	cmd.Flags().BoolVar(&opts.noFail, "no-fail", false, "always exit 0 when the scan completes")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the summary on stderr")
	cmd.Flags().IntVar(&opts.threads, "threads", 0, "number of files scanned concurrently")
	return cmd
}

func runScan(cmd *cobra.Command, opts *scanOptions, args []string) error {
	config, err := scanner.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	config = scanner.MergeConfig(config, map[string]interface{}{
		"type":    opts.outputType,
		"fail-on": opts.failOn,
		"threads": opts.threads,
	})
	if err := config.Validate(); err != nil {
		return err
	}

	args = dedupeStdin(args)

	results, err := scanInputs(cmd.Context(), cmd.InOrStdin(), args, config.Threads)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	// Determine output writer
	w := cmd.OutOrStdout()
	if opts.outputFile != "" {
		f, err := os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeResults(w, results, output.OutputType(config.Output)); err != nil {
		return fmt.Errorf("failed to write findings: %w", err)
	}

	if !opts.quiet {
		printSummary(cmd.ErrOrStderr(), results)
	}

	if !opts.noFail && exceedsThreshold(results, config.FailOn) {
		return errFindings
	}
	return nil
}

// dedupeStdin keeps only the first "-", since stdin can be read once.
// No arguments means stdin.
func dedupeStdin(args []string) []string {
	if len(args) == 0 {
		return []string{stdinArg}
	}

	out := make([]string, 0, len(args))
	seen := false
	for _, arg := range args {
		if arg == stdinArg {
			if seen {
				continue
			}
			seen = true
		}
		out = append(out, arg)
	}
	return out
}

// scanInputs scans every named input, at most threads at a time.
func scanInputs(ctx context.Context, stdin io.Reader, args []string, threads int) ([]scanResult, error) {
	if threads < 1 {
		threads = 1
	}

	s := scanner.NewScanner()
	results := make([]scanResult, len(args))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, arg := range args {
		i, arg := i, arg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if arg == stdinArg {
				findings, err := s.ScanReader(stdin, scanner.SourceMeta{})
				if err != nil {
					return err
				}
				results[i] = scanResult{name: "stdin", findings: findings}
				return nil
			}

			findings, err := s.ScanFile(arg)
			if err != nil {
				return err
			}
			results[i] = scanResult{name: arg, findings: findings}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// writeResults writes one report per input for the text formats and a
// single document covering every input for the machine formats.
func writeResults(w io.Writer, results []scanResult, outputType output.OutputType) error {
	switch outputType {
	case output.OutputTypeJSON, output.OutputTypeSARIF:
		var all []scanner.Finding
		for _, r := range results {
			all = append(all, r.findings...)
		}
		return output.WriteFindings(all, outputType, w)
	}

	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s\n", r.name)
		}
		if err := output.WriteFindings(r.findings, outputType, w); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, results []scanResult) {
	for _, r := range results {
		if n := len(r.findings); n > 0 {
			color.New(color.FgYellow).Fprintf(w, "Found %d security issues in %s\n", n, r.name)
		} else {
			color.New(color.FgGreen).Fprintf(w, "No security issues found in %s!\n", r.name)
		}
	}
}

func exceedsThreshold(results []scanResult, failOn string) bool {
	threshold := scanner.SeverityRank(failOn)
	for _, r := range results {
		for _, f := range r.findings {
			if scanner.SeverityRank(f.Severity) >= threshold {
				return true
			}
		}
	}
	return false
}
