package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/configmanager"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/marshaller"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the resolved pipeline configuration",
		Long: `Prints the pipeline descriptor after merging defaults, pipeline.yaml, and
environment overrides, so the effective configuration can be inspected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd)
		},
		SilenceUsage: true,
	}

	return cmd
}

func runStatus(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	manager := configmanager.NewConfigManager(out)

	cfg, err := manager.LoadConfig()
	if err != nil {
		return err
	}

	if !manager.ConfigFileFound() {
		notify.Warningf(out, "showing built-in defaults")
	}

	content, err := marshaller.NewYAMLMarshaller[*v1alpha1.Pipeline]().Marshal(cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, content)
	if err != nil {
		return fmt.Errorf("write resolved configuration: %w", err)
	}

	return nil
}
