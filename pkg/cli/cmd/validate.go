package cmd

import (
	"io"

	"github.com/spf13/cobra"

	kubeconformclient "github.com/sanketmote05/cicd-pipeline/pkg/client/kubeconform"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/configmanager"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

type validateFlags struct {
	strict               bool
	ignoreMissingSchemas bool
	skipKinds            []string
	kubernetesVersion    string
}

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate Kubernetes manifests against their schemas",
		Long: `Validates manifest files against the Kubernetes schemas. When no path is given
the manifests directory from the pipeline descriptor is validated. Directories
are walked recursively for YAML files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&flags.strict, "strict", true, "Reject manifests with unknown fields")
	cmd.Flags().BoolVar(&flags.ignoreMissingSchemas, "ignore-missing-schemas", true,
		"Skip resources without a known schema (custom resources)")
	cmd.Flags().StringSliceVar(&flags.skipKinds, "skip-kinds", nil, "Resource kinds to skip")
	cmd.Flags().StringVar(&flags.kubernetesVersion, "kubernetes-version", "master",
		"Kubernetes version to validate against")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, flags *validateFlags) error {
	out := cmd.OutOrStdout()

	path, err := resolveValidatePath(out, args)
	if err != nil {
		return err
	}

	notify.Activityf(out, "validating manifests in '%s'", path)

	opts := &kubeconformclient.ValidationOptions{
		Strict:               flags.strict,
		IgnoreMissingSchemas: flags.ignoreMissingSchemas,
		SkipKinds:            flags.skipKinds,
		KubernetesVersion:    flags.kubernetesVersion,
	}

	err = kubeconformclient.NewClient().ValidateDirectory(path, opts)
	if err != nil {
		return err
	}

	notify.Successf(out, "manifests in '%s' are valid", path)

	return nil
}

func resolveValidatePath(out io.Writer, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	cfg, err := configmanager.NewConfigManager(out).LoadConfigSilent()
	if err != nil {
		return "", err
	}

	return cfg.Spec.Manifests.Path, nil
}
