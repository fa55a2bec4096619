package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ejagojo/SecureVibe/internal/scanner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev" // Set by ldflags

// errFindings is returned by scan when a finding meets the fail_on severity.
var errFindings = errors.New("findings at or above severity threshold")

func exitWith(err error, code int) {
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

// Exit codes
const (
	exitClean    = 0
	exitError    = 1
	exitFindings = 3
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "securevibe",
		Short:         "Naive source code security scanner",
		Long:          `SecureVibe scans source text for exposed credentials and missing input validation and prints a short report with suggested fixes.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newScanCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newInitCmd())
	return root
}

func newInitCmd() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", configPath)
			}

			if err := scanner.SaveConfig(scanner.DefaultConfig(), configPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", scanner.DefaultConfigPath(), "path to configuration file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	return cmd
}

// run executes the command tree and maps its outcome to an exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitClean, nil
	case errors.Is(err, errFindings):
		return exitFindings, nil
	default:
		return exitError, err
	}
}

func main() {
	code, err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	exitWith(err, code)
}
