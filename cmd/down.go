package cmd

import (
	"docker-up/feature/stack"

	"github.com/spf13/cobra"
)

// downCmd removes the resources of the stack file.
var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Remove every resource of a stack",
	Long: `Removes the declared resources in reverse dependency order.
Resources that are already absent are reported as removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStack(cmd, (*stack.Service).Down)
	},
}

func init() {
	addStackFileFlag(downCmd)
	RootCmd.AddCommand(downCmd)
}
