package cmd

import (
	"context"
	"errors"

	"docker-up/feature/stack"

	"github.com/spf13/cobra"
)

// errDrift makes diff exit non-zero under --exit-code.
var errDrift = errors.New("stack has drifted")

var diffExitCode bool

// diffCmd compares the stack file with the daemon without changing anything.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show how the daemon differs from a stack",
	Long: `Inspects every declared resource and reports it as in-sync, drifted or
missing. No resource is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStack(cmd, func(s *stack.Service, ctx context.Context, f *stack.File) (*stack.Report, error) {
			report, err := s.Diff(ctx, f)
			if err == nil && diffExitCode && report.Drifted() {
				return report, errDrift
			}
			return report, err
		})
	},
}

func init() {
	addStackFileFlag(diffCmd)
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "Exit non-zero when a resource is drifted or missing")
	RootCmd.AddCommand(diffCmd)
}
