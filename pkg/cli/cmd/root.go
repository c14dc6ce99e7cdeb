// Package cmd provides the cicd command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanketmote05/cicd-pipeline/pkg/cli/cmd/gen"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cicd",
		Short: "cicd drives a commit-to-pod delivery pipeline for a hello-world application",
		Long: `cicd wires a source repository, a build tool, a static-analysis server, a
container engine, an image registry, and a GitOps agent into one linear pipeline:
commit, build, test, analyze, image, push, manifest update, sync, rollout.

The heavy lifting stays with the external systems; cicd sequences them and
carries the commit-derived image tag from one end to the other.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The err can safely be ignored, as it can never fail at runtime.
			_ = cmd.Help()

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewRolloutCmd())
	cmd.AddCommand(gen.NewGenCmd())

	return cmd
}

// Execute runs the provided root command.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}
