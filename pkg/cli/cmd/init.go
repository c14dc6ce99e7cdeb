package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil/scaffolder"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

type initFlags struct {
	output       string
	force        bool
	appName      string
	sourceURL    string
	manifestsURL string
	registry     string
	repository   string
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a pipeline project",
		Long: `Generates a ready-to-run pipeline project: the pipeline.yaml descriptor, a
Dockerfile, the Kubernetes manifests (deployment, service, ingress,
kustomization), and a hello-world sample application.

Existing files are left untouched unless --force is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", ".", "Output directory for the project")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing files")
	cmd.Flags().StringVar(&flags.appName, "name", v1alpha1.DefaultAppName, "Application name")
	cmd.Flags().StringVar(&flags.sourceURL, "source-url", "", "Application source repository URL")
	cmd.Flags().
		StringVar(&flags.manifestsURL, "manifests-url", "", "Manifest repository URL updated by the pipeline")
	cmd.Flags().StringVar(&flags.registry, "registry", v1alpha1.DefaultRegistry, "Image registry host")
	cmd.Flags().
		StringVar(&flags.repository, "repository", "", "Image repository (defaults to the application name)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	notify.Titlef(cmd.OutOrStdout(), "📂", "initializing pipeline project")

	cfg := v1alpha1.NewPipeline()
	cfg.Spec.App.Name = flags.appName
	cfg.Spec.Source.URL = flags.sourceURL
	cfg.Spec.Manifests.URL = flags.manifestsURL
	cfg.Spec.Image.Registry = flags.registry
	cfg.Spec.Image.Repository = flags.repository
	cfg.SetDefaults()

	err := scaffolder.NewScaffolder(*cfg, cmd.OutOrStdout()).Scaffold(flags.output, flags.force)
	if err != nil {
		return err
	}

	notify.Successf(cmd.OutOrStdout(), "project initialized in '%s'", flags.output)

	return nil
}
