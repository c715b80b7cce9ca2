package cmd

import (
	"docker-up/core/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listNamespace string

// listCmd lists the instances of one builtin kind.
var listCmd = &cobra.Command{
	Use:     "ls <kind>",
	Aliases: []string{"list"},
	Short:   "List the resources of a kind",
	Long: `Lists every network, volume, secret or service on the daemon with its full
inspected state. --namespace keeps only the resources of one stack.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		docs, err := e.service().List(cmd.Context(), args[0], listNamespace)
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return writeJSON(cmd.OutOrStdout(), docs)
		}
		for _, doc := range docs {
			name := utils.ToString(doc["Name"])
			if specName, ok := utils.Lookup(doc, "Spec.Name"); ok && name == "" {
				name = utils.ToString(specName)
			}
			e.log.Info("Resource", zap.String("kind", args[0]), zap.String("name", name))
		}
		e.log.Info("Listed resources", zap.String("kind", args[0]), zap.Int("count", len(docs)))
		return nil
	},
}

// inspectCmd prints the remote state of one resource.
var inspectCmd = &cobra.Command{
	Use:   "inspect <kind> <name>",
	Short: "Show the remote state of a resource",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		doc, err := e.service().Inspect(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), doc)
	},
}

var historyLimit int

// historyCmd prints the most recent reconcile records.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent reconcile history (requires database.enabled)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		records, err := e.service().History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return writeJSON(cmd.OutOrStdout(), records)
		}
		for _, r := range records {
			e.log.Info("History",
				zap.String("run_id", r.RunID),
				zap.String("namespace", r.Namespace),
				zap.String("kind", r.Kind),
				zap.String("name", r.Name),
				zap.String("action", r.Action),
				zap.String("status", r.Status),
				zap.String("error", r.Error),
				zap.Time("created_at", r.CreatedAt),
			)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listNamespace, "namespace", "n", "", "Only list resources of this stack namespace")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records")

	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(historyCmd)
}
