// Package kustomizationgenerator generates the kustomization.yaml tying the
// application manifests together.
package kustomizationgenerator

import (
	"fmt"

	ktypes "sigs.k8s.io/kustomize/api/types"

	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/marshaller"
)

// Generator generates a kustomization.yaml file.
type Generator struct {
	Marshaller marshaller.Marshaller[*ktypes.Kustomization]
}

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{
		Marshaller: marshaller.NewYAMLMarshaller[*ktypes.Kustomization](),
	}
}

// Generate creates a kustomization.yaml and writes it to the specified output.
func (g *Generator) Generate(
	kustomization *ktypes.Kustomization,
	opts yamlgenerator.Options,
) (string, error) {
	kustomization.FixKustomization()

	out, err := g.Marshaller.Marshal(kustomization)
	if err != nil {
		return "", fmt.Errorf("marshal kustomization: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.TryWriteFile(out, opts.Output, opts.Force)
		if err != nil {
			return "", fmt.Errorf("write kustomization: %w", err)
		}

		return result, nil
	}

	return out, nil
}

// Build constructs a Kustomization referencing the given resource files.
func Build(resources ...string) *ktypes.Kustomization {
	return &ktypes.Kustomization{
		TypeMeta: ktypes.TypeMeta{
			APIVersion: ktypes.KustomizationVersion,
			Kind:       ktypes.KustomizationKind,
		},
		Resources: resources,
	}
}
