package gen

import (
	"github.com/spf13/cobra"

	ingressgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/ingress"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
)

// NewIngressCmd creates the gen ingress command.
func NewIngressCmd() *cobra.Command {
	flags := &genFlags{}

	cmd := &cobra.Command{
		Use:   "ingress",
		Short: "Generate the application Ingress manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(out)
			if err != nil {
				return err
			}

			model := ingressgenerator.Build(cfg.Spec.App)

			content, err := ingressgenerator.NewGenerator().Generate(model, yamlgenerator.Options{
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

	return cmd
}
