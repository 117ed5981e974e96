package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobimat/workshop-tasks/internal/services"
)

var repairDrift bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Find tasks whose status is missing from the audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		reconciler := services.NewReconcileService(store, cfg.ReconcileBatchSize)
		ctx := cmd.Context()

		drifts, err := reconciler.Check(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, d := range drifts {
			last := "-"
			if d.LastLogged != nil {
				last = string(*d.LastLogged)
			}
			fmt.Fprintf(out, "%s\tstatus=%s\tlast_logged=%s\n", d.Task.Reference, d.Task.Status, last)
		}
		fmt.Fprintf(out, "%d task(s) drifted\n", len(drifts))

		if !repairDrift || len(drifts) == 0 {
			return nil
		}

		repaired, err := reconciler.Repair(ctx, drifts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d corrective log entries written\n", repaired)
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&repairDrift, "repair", false, "append corrective log entries for every drifted task")
	rootCmd.AddCommand(reconcileCmd)
}
