package cmd

import (
	"github.com/spf13/cobra"

	dockerclient "github.com/sanketmote05/cicd-pipeline/pkg/client/docker"
	gitclient "github.com/sanketmote05/cicd-pipeline/pkg/client/git"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/configmanager"
	"github.com/sanketmote05/cicd-pipeline/pkg/svc/pipeline"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/runner"
)

type runFlags struct {
	only []string
}

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline from commit to manifest update",
		Long: `Runs the delivery stages in order: checkout, build, test, analyze, image-build,
image-push, manifest-update. The run stops at the first failing stage.

The checked-out commit determines the image tag, so re-running for an unchanged
source commit promotes the same image and leaves the manifests untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringSliceVar(&flags.only, "only", nil,
		"run only the named stages, keeping their pipeline order "+
			"(checkout, build, test, analyze, image-build, image-push, manifest-update)")

	return cmd
}

func runPipeline(cmd *cobra.Command, flags *runFlags) error {
	out := cmd.OutOrStdout()

	cfg, err := configmanager.NewConfigManager(out).LoadConfig()
	if err != nil {
		return err
	}

	docker, err := dockerclient.NewClient()
	if err != nil {
		return err
	}

	git := gitclient.NewClient(out)
	cmdRunner := runner.NewShellCommandRunner(out, cmd.ErrOrStderr()).
		WithEnv(runner.FormatEnv(cfg.Spec.Env)...)

	stages, err := pipeline.FilterStages(pipeline.DefaultStages(git, docker, cmdRunner, out), flags.only)
	if err != nil {
		return err
	}

	engine := pipeline.NewEngine(out, stages...)

	state, err := engine.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	notify.Infof(out, "image %s promoted at commit %s", state.Image.String(), state.CommitSHA)

	return nil
}
