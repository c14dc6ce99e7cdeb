package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sanketmote05/cicd-pipeline/pkg/io/configmanager"
	"github.com/sanketmote05/cicd-pipeline/pkg/svc/rollout"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

type rolloutFlags struct {
	wait bool
}

// NewRolloutCmd creates the rollout command.
func NewRolloutCmd() *cobra.Command {
	flags := &rolloutFlags{wait: true}

	cmd := &cobra.Command{
		Use:   "rollout",
		Short: "Wait for the application deployment to roll out",
		Long: `Watches the application's Deployment until the latest revision is fully rolled
out, the deployment stops progressing, or the configured timeout elapses.
With --wait=false the current rollout state is printed once instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRollout(cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&flags.wait, "wait", true, "Wait for completion instead of printing once")

	return cmd
}

func runRollout(cmd *cobra.Command, flags *rolloutFlags) error {
	out := cmd.OutOrStdout()

	cfg, err := configmanager.NewConfigManager(out).LoadConfig()
	if err != nil {
		return err
	}

	cluster := cfg.Spec.Cluster
	appName := cfg.Spec.App.Name

	waiter, err := rollout.NewWaiter(cluster.Kubeconfig, cluster.Context)
	if err != nil {
		return err
	}

	if !flags.wait {
		status, err := waiter.Status(cmd.Context(), cluster.Namespace, appName)
		if err != nil {
			return err
		}

		notify.Infof(out, "%s", status)

		return nil
	}

	notify.Activityf(out, "waiting for deployment '%s' in namespace '%s'", appName, cluster.Namespace)

	err = waiter.Wait(cmd.Context(), cluster.Namespace, appName, cluster.Timeout.Duration)
	if err != nil {
		return err
	}

	notify.Successf(out, "deployment '%s' rolled out", appName)

	return nil
}
