package cmd

import (
	"context"

	"docker-up/feature/stack"

	"github.com/spf13/cobra"
)

// stackAction is a Service method taking a loaded stack file.
type stackAction func(s *stack.Service, ctx context.Context, f *stack.File) (*stack.Report, error)

// runStack loads the stack file, runs action and prints its report. A
// partial report is printed before the error is returned.
func runStack(cmd *cobra.Command, action stackAction) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	svc := e.service()
	f, err := svc.Load(ctx, stackFile)
	if err != nil {
		return err
	}

	report, runErr := action(svc, ctx, f)
	if err := printReport(e.log, cmd.OutOrStdout(), report); err != nil {
		return err
	}
	return runErr
}
