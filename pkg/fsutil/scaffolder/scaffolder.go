// Package scaffolder generates a complete pipeline project: descriptor, container
// build recipe, Kubernetes manifests, and a sample application.
package scaffolder

import (
	"fmt"
	"io"
	"path/filepath"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	ktypes "sigs.k8s.io/kustomize/api/types"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil"
	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator"
	deploymentgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/deployment"
	ingressgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/ingress"
	kustomizationgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/kustomization"
	servicegenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/service"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

const (
	// PipelineConfigFile is the default filename for the pipeline descriptor.
	PipelineConfigFile = "pipeline.yaml"

	// DockerfileName is the filename of the generated container build recipe.
	DockerfileName = "Dockerfile"
)

// Scaffolder generates pipeline project files and configurations.
type Scaffolder struct {
	PipelineConfig         v1alpha1.Pipeline
	PipelineYAMLGenerator  generator.Generator[v1alpha1.Pipeline, yamlgenerator.Options]
	DeploymentGenerator    generator.Generator[*appsv1.Deployment, yamlgenerator.Options]
	ServiceGenerator       generator.Generator[*corev1.Service, yamlgenerator.Options]
	IngressGenerator       generator.Generator[*networkingv1.Ingress, yamlgenerator.Options]
	KustomizationGenerator generator.Generator[*ktypes.Kustomization, yamlgenerator.Options]
	Writer                 io.Writer
}

// NewScaffolder creates a new Scaffolder for the provided pipeline configuration.
func NewScaffolder(cfg v1alpha1.Pipeline, writer io.Writer) *Scaffolder {
	return &Scaffolder{
		PipelineConfig:         cfg,
		PipelineYAMLGenerator:  yamlgenerator.NewGenerator[v1alpha1.Pipeline](),
		DeploymentGenerator:    deploymentgenerator.NewGenerator(),
		ServiceGenerator:       servicegenerator.NewGenerator(),
		IngressGenerator:       ingressgenerator.NewGenerator(),
		KustomizationGenerator: kustomizationgenerator.NewGenerator(),
		Writer:                 writer,
	}
}

// Scaffold generates the project files into the output directory.
//
// This method orchestrates the generation of:
//   - pipeline.yaml descriptor
//   - Dockerfile for the container image build
//   - the Kubernetes manifest directory (deployment, service, ingress,
//     kustomization)
//   - the sample application (Maven project with an HTTP entry point and a
//     placeholder test)
//
// Existing files are skipped unless force is set.
func (s *Scaffolder) Scaffold(output string, force bool) error {
	if output == "" {
		return ErrEmptyOutputDirectory
	}

	err := s.generatePipelineConfig(output, force)
	if err != nil {
		return err
	}

	err = s.generateDockerfile(output, force)
	if err != nil {
		return err
	}

	err = s.generateManifests(output, force)
	if err != nil {
		return err
	}

	return s.generateSampleApp(output, force)
}

func (s *Scaffolder) generatePipelineConfig(output string, force bool) error {
	path := filepath.Join(output, PipelineConfigFile)

	s.PipelineConfig.APIVersion = v1alpha1.APIVersion
	s.PipelineConfig.Kind = v1alpha1.Kind

	_, err := s.PipelineYAMLGenerator.Generate(s.PipelineConfig, yamlgenerator.Options{
		Output: path,
		Force:  force,
	})
	if err != nil {
		return fmt.Errorf("generate %s: %w", PipelineConfigFile, err)
	}

	notify.Generatef(s.Writer, "generated '%s'", PipelineConfigFile)

	return nil
}

func (s *Scaffolder) generateDockerfile(output string, force bool) error {
	content := fmt.Sprintf(dockerfileTemplate, s.PipelineConfig.Spec.App.ContainerPort)

	_, err := fsutil.TryWriteFile(content, filepath.Join(output, DockerfileName), force)
	if err != nil {
		return fmt.Errorf("generate %s: %w", DockerfileName, err)
	}

	notify.Generatef(s.Writer, "generated '%s'", DockerfileName)

	return nil
}

func (s *Scaffolder) generateManifests(output string, force bool) error {
	spec := s.PipelineConfig.Spec
	manifestsDir := filepath.Join(output, spec.Manifests.Path)

	// The scaffolded image tag is a placeholder; the first pipeline run rewrites it
	// to a commit-derived tag.
	placeholderImage := fmt.Sprintf("%s/%s:latest", spec.Image.Registry, spec.Image.Repository)

	type manifest struct {
		file     string
		generate func(output string) error
	}

	manifests := []manifest{
		{
			file: spec.Manifests.DeploymentFile,
			generate: func(out string) error {
				model := deploymentgenerator.Build(spec.App, placeholderImage)
				_, err := s.DeploymentGenerator.Generate(model, yamlgenerator.Options{
					Output: out,
					Force:  force,
				})

				return err
			},
		},
		{
			file: "service.yaml",
			generate: func(out string) error {
				model := servicegenerator.Build(spec.App)
				_, err := s.ServiceGenerator.Generate(model, yamlgenerator.Options{
					Output: out,
					Force:  force,
				})

				return err
			},
		},
		{
			file: "ingress.yaml",
			generate: func(out string) error {
				model := ingressgenerator.Build(spec.App)
				_, err := s.IngressGenerator.Generate(model, yamlgenerator.Options{
					Output: out,
					Force:  force,
				})

				return err
			},
		},
		{
			file: "kustomization.yaml",
			generate: func(out string) error {
				model := kustomizationgenerator.Build(
					spec.Manifests.DeploymentFile, "service.yaml", "ingress.yaml",
				)
				_, err := s.KustomizationGenerator.Generate(model, yamlgenerator.Options{
					Output: out,
					Force:  force,
				})

				return err
			},
		},
	}

	for _, m := range manifests {
		err := m.generate(filepath.Join(manifestsDir, m.file))
		if err != nil {
			return fmt.Errorf("generate %s: %w", m.file, err)
		}

		notify.Generatef(s.Writer, "generated '%s'", filepath.Join(spec.Manifests.Path, m.file))
	}

	return nil
}

func (s *Scaffolder) generateSampleApp(output string, force bool) error {
	spec := s.PipelineConfig.Spec

	files := []struct {
		path    string
		content string
	}{
		{"pom.xml", fmt.Sprintf(pomTemplate, spec.App.Name, spec.App.Name)},
		{
			filepath.Join("src", "main", "java", "com", "example", "App.java"),
			fmt.Sprintf(appTemplate, spec.App.ContainerPort),
		},
		{
			filepath.Join("src", "test", "java", "com", "example", "AppTest.java"),
			appTestTemplate,
		},
	}

	for _, file := range files {
		_, err := fsutil.TryWriteFile(file.content, filepath.Join(output, file.path), force)
		if err != nil {
			return fmt.Errorf("generate %s: %w", file.path, err)
		}

		notify.Generatef(s.Writer, "generated '%s'", file.path)
	}

	return nil
}
