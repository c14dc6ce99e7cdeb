// Package gen provides the manifest generation commands.
package gen

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/configmanager"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

// NewGenCmd creates the gen command group.
func NewGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate Kubernetes manifests from the pipeline descriptor",
		Long: `Generates individual Kubernetes manifests (deployment, service, ingress,
kustomization) from the application settings in the pipeline descriptor.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The err can safely be ignored, as it can never fail at runtime.
			_ = cmd.Help()

			return nil
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(NewDeploymentCmd())
	cmd.AddCommand(NewServiceCmd())
	cmd.AddCommand(NewIngressCmd())
	cmd.AddCommand(NewKustomizationCmd())

	return cmd
}

// genFlags are the options shared by all gen subcommands.
type genFlags struct {
	output string
	force  bool
}

func addGenFlags(cmd *cobra.Command, flags *genFlags, defaultOutput string) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultOutput,
		"Output file path (empty prints to stdout)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing file")
}

// loadConfig loads the pipeline descriptor without per-command notifications.
func loadConfig(writer io.Writer) (*v1alpha1.Pipeline, error) {
	return configmanager.NewConfigManager(writer).LoadConfigSilent()
}

// emit prints content to out when no output path is set, or reports the written file.
func emit(out io.Writer, content, outputPath string) error {
	if outputPath == "" {
		_, err := io.WriteString(out, content)

		return err
	}

	notify.Generatef(out, "generated '%s'", outputPath)

	return nil
}
