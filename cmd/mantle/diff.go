package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mantle-engine/mantle/pkg/build"
	"github.com/mantle-engine/mantle/pkg/graph"
	"github.com/mantle-engine/mantle/pkg/logging"
)

func newDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show what deploy would change without touching the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.IntoContext(cmd.Context(), loggerFromFlags())
			end := logging.StartAction(ctx, "diff", "project", projectPath, "environment", environment)
			var err error
			defer end(&err)

			desired, previous, err := loadGraphs(ctx)
			if err != nil {
				return err
			}

			entries, err := Plan(previous, desired)
			if err != nil {
				return err
			}

			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-24s %s\n", e.Operation, e.Kind, e.ID)
			}
			return nil
		},
	}
}

// loadGraphs builds the desired graph from the project file and loads the
// previous graph for environment from the state store, ready for either
// diff's planning pass or deploy's Evaluate call.
func loadGraphs(ctx context.Context) (desired, previous *graph.Graph, err error) {
	pf, err := loadProjectFile(projectPath)
	if err != nil {
		return nil, nil, err
	}
	desc, owner, err := pf.toDescription(environment)
	if err != nil {
		return nil, nil, err
	}
	desired, err = build.BuildDesiredGraph(desc, owner, projectDir())
	if err != nil {
		return nil, nil, err
	}

	doc, err := newStore().Load(ctx, stateKey())
	if err != nil {
		return nil, nil, err
	}
	previous = graph.New()
	for _, r := range doc.Environments[environment] {
		previous.Insert(r)
	}

	return desired, previous, nil
}

func stateKey() string {
	return environment + ".yml"
}
