package gen

import (
	"github.com/spf13/cobra"

	servicegenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/service"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
)

// NewServiceCmd creates the gen service command.
func NewServiceCmd() *cobra.Command {
	flags := &genFlags{}

	cmd := &cobra.Command{
		Use:   "service",
		Short: "Generate the application Service manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(out)
			if err != nil {
				return err
			}

			model := servicegenerator.Build(cfg.Spec.App)

			content, err := servicegenerator.NewGenerator().Generate(model, yamlgenerator.Options{
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
