package main

import (
	"github.com/spf13/cobra"

	"github.com/mantle-engine/mantle/pkg/manager"
	"github.com/mantle-engine/mantle/pkg/state"
)

var (
	projectPath    string
	environment    string
	stateDir       string
	allowPurchases bool
	badgeFreeQuota int
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mantle",
		Short: "Reconcile a target's configuration against a desired description",
	}

	root.PersistentFlags().StringVar(&projectPath, "project", "mantle.yml", "path to the project file")
	root.PersistentFlags().StringVar(&environment, "environment", "production", "environment label")
	root.PersistentFlags().StringVar(&stateDir, "state-dir", ".mantle-state", "directory the local state transport reads and writes")
	root.PersistentFlags().BoolVar(&allowPurchases, "allow-purchases", false, "allow operations with a positive price to proceed")
	root.PersistentFlags().IntVar(&badgeFreeQuota, "badge-free-quota", 1, "free badge quota for the reference resource manager")

	root.AddCommand(newDiffCommand())
	root.AddCommand(newDeployCommand())
	return root
}

func newStore() *state.Store {
	return state.New(state.LocalFileTransport{Dir: stateDir})
}

func newManager() manager.ResourceManager {
	return manager.NewReference(badgeFreeQuota)
}
