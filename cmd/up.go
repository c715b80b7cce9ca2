package cmd

import (
	"docker-up/feature/stack"

	"github.com/spf13/cobra"
)

// stackFile is the stack location shared by up, down and diff.
var stackFile string

// upCmd converges the daemon to the stack file.
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update every resource of a stack",
	Long: `Creates absent resources and updates present ones, in dependency order:
networks, volumes, secrets, services, then custom kinds.

Examples:
  # Local stack file
  docker-up up -f stack.yml

  # Stack file from object storage (requires storage.enabled)
  docker-up up -f s3://stacks/web.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStack(cmd, (*stack.Service).Up)
	},
}

func addStackFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&stackFile, "file", "f", "stack.yml", "Stack file path or s3://bucket/key location")
}

func init() {
	addStackFileFlag(upCmd)
	RootCmd.AddCommand(upCmd)
}
