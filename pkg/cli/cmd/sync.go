package cmd

import (
	"github.com/spf13/cobra"

	argocdclient "github.com/sanketmote05/cicd-pipeline/pkg/client/argocd"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/configmanager"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

type syncFlags struct {
	hardRefresh bool
}

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	flags := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger the GitOps agent and wait for the application to converge",
		Long: `Asks the GitOps agent to refresh the application from the manifest repository,
then waits until it reports Synced and Healthy. The agent performs the actual
apply; this command only triggers and observes it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&flags.hardRefresh, "hard-refresh", false,
		"Drop the agent's manifest caches before refreshing")

	return cmd
}

func runSync(cmd *cobra.Command, flags *syncFlags) error {
	out := cmd.OutOrStdout()

	cfg, err := configmanager.NewConfigManager(out).LoadConfig()
	if err != nil {
		return err
	}

	cluster := cfg.Spec.Cluster

	reconciler, err := argocdclient.NewReconciler(
		cluster.Kubeconfig,
		cluster.Context,
		cluster.Application,
	)
	if err != nil {
		return err
	}

	notify.Activityf(out, "syncing application '%s'", cluster.Application)

	err = reconciler.Reconcile(cmd.Context(), argocdclient.ReconcileOptions{
		Timeout:     cluster.Timeout.Duration,
		HardRefresh: flags.hardRefresh,
	})
	if err != nil {
		return err
	}

	notify.Successf(out, "application '%s' is synced and healthy", cluster.Application)

	return nil
}
