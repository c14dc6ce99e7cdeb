package gen

import (
	"fmt"

	"github.com/spf13/cobra"

	deploymentgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/deployment"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
)

// NewDeploymentCmd creates the gen deployment command.
func NewDeploymentCmd() *cobra.Command {
	flags := &genFlags{}

	var image string

	cmd := &cobra.Command{
		Use:   "deployment",
		Short: "Generate the application Deployment manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(out)
			if err != nil {
				return err
			}

			if image == "" {
				image = fmt.Sprintf("%s/%s:latest",
					cfg.Spec.Image.Registry, cfg.Spec.Image.Repository)
			}

			model := deploymentgenerator.Build(cfg.Spec.App, image)

			content, err := deploymentgenerator.NewGenerator().Generate(model, yamlgenerator.Options{
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
	cmd.Flags().StringVar(&image, "image", "",
		"Image reference to deploy (defaults to the descriptor's repository with tag latest)")

	return cmd
}
