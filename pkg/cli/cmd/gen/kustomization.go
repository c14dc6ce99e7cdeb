package gen

import (
	"github.com/spf13/cobra"

	kustomizationgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/kustomization"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
)

// NewKustomizationCmd creates the gen kustomization command.
func NewKustomizationCmd() *cobra.Command {
	flags := &genFlags{}

	var resources []string

	cmd := &cobra.Command{
		Use:   "kustomization",
		Short: "Generate the kustomization.yaml tying the manifests together",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(out)
			if err != nil {
				return err
			}

			if len(resources) == 0 {
				resources = []string{
					cfg.Spec.Manifests.DeploymentFile, "service.yaml", "ingress.yaml",
				}
			}

			model := kustomizationgenerator.Build(resources...)

			content, err := kustomizationgenerator.NewGenerator().
				Generate(model, yamlgenerator.Options{
					Output: flags.output,
					Force:  flags.force,
				})
			if err != nil {
				return err
			}

			return emit(out, content, flags.output)
		},
		SilenceUsage: true,
	}

	addGenFlags(cmd, flags, "")
	cmd.Flags().StringSliceVar(&resources, "resources", nil,
		"Resource files to reference (defaults to the scaffolded manifest set)")

	return cmd
}
