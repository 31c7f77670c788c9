package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mantle-engine/mantle/pkg/logging"
	"github.com/mantle-engine/mantle/pkg/reconcile"
	"github.com/mantle-engine/mantle/pkg/resource"
	"github.com/mantle-engine/mantle/pkg/state"
)

func newDeployCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Reconcile the platform toward the project file's desired state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.IntoContext(cmd.Context(), loggerFromFlags())
			end := logging.StartAction(ctx, "deploy", "project", projectPath, "environment", environment)
			var err error
			defer end(&err)

			desired, previous, err := loadGraphs(ctx)
			if err != nil {
				return err
			}

			engine := reconcile.New(newManager())
			result, next, evalErr := engine.Evaluate(ctx, previous, desired, reconcile.Policy{AllowPurchases: allowPurchases})
			if next == nil {
				// Evaluate aborted before any operation (validation or cycle
				// error); there is no next graph and nothing to save.
				return evalErr
			}

			summary := result.Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "created=%d updated=%d deleted=%d noop=%d skipped=%d failed=%d\n",
				summary.Created, summary.Updated, summary.Deleted, summary.Noop, summary.Skipped, summary.Failed)
			for _, r := range result {
				if r.Status == reconcile.StatusFailed || r.Status == reconcile.StatusSkipped {
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-24s %-20s %s\n", r.Status, r.Operation, r.ResourceID, r.Reason)
				}
			}

			resources := make([]*resource.Resource, 0, next.Len())
			resources = append(resources, next.ResourcesList()...)

			if saveErr := newStore().Save(ctx, stateKey(), state.Document{
				Environments: map[string][]*resource.Resource{environment: resources},
			}); saveErr != nil {
				if evalErr != nil {
					return fmt.Errorf("reconcile failed (%v) and state could not be saved: %w", evalErr, saveErr)
				}
				return saveErr
			}

			return evalErr
		},
	}
}
