package v1alpha1

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Default values applied by NewPipeline and SetDefaults.
const (
	// DefaultAppName is the application name used when none is configured.
	DefaultAppName = "app"
	// DefaultContainerPort is the container port exposed by the deployment.
	DefaultContainerPort int32 = 8080
	// DefaultServicePort is the external port the service maps to the container port.
	DefaultServicePort int32 = 80
	// DefaultReplicas is the deployment replica count.
	DefaultReplicas int32 = 2
	// DefaultBranch is the branch used for source and manifest repositories.
	DefaultBranch = "main"
	// DefaultRegistry is the image registry host.
	DefaultRegistry = "docker.io"
	// DefaultDockerfile is the container build recipe file name.
	DefaultDockerfile = "Dockerfile"
	// DefaultManifestsPath is the manifest directory within the manifest repository.
	DefaultManifestsPath = "k8s"
	// DefaultDeploymentFile is the deployment manifest file name.
	DefaultDeploymentFile = "deployment.yaml"
	// DefaultNamespace is the cluster namespace for sync and rollout checks.
	DefaultNamespace = "default"
	// DefaultTimeout bounds sync and rollout waits.
	DefaultTimeout = 5 * time.Minute

	defaultBuildCommand    = "mvn -B -DskipTests clean package"
	defaultTestCommand     = "mvn -B test"
	defaultAnalysisCommand = "mvn -B sonar:sonar"
	defaultKubeconfig      = "~/.kube/config"
	defaultIngressHost     = "app.local"
	defaultAuthorName      = "cicd-pipeline"
	defaultAuthorEmail     = "cicd@localhost"
)

// NewPipeline creates a Pipeline with type metadata and defaults applied.
func NewPipeline() *Pipeline {
	pipeline := &Pipeline{
		TypeMeta: metav1.TypeMeta{
			APIVersion: APIVersion,
			Kind:       Kind,
		},
		Spec: Spec{},
	}
	pipeline.SetDefaults()

	return pipeline
}

// SetDefaults fills unset fields with their default values.
// Explicitly configured values are never overwritten.
//
//nolint:cyclop,funlen // Defaulting is a flat list of field checks.
func (p *Pipeline) SetDefaults() {
	if p.APIVersion == "" {
		p.APIVersion = APIVersion
	}

	if p.Kind == "" {
		p.Kind = Kind
	}

	spec := &p.Spec

	if spec.App.Name == "" {
		spec.App.Name = DefaultAppName
	}

	if spec.App.ContainerPort == 0 {
		spec.App.ContainerPort = DefaultContainerPort
	}

	if spec.App.ServicePort == 0 {
		spec.App.ServicePort = DefaultServicePort
	}

	if spec.App.Replicas == 0 {
		spec.App.Replicas = DefaultReplicas
	}

	if spec.App.IngressHost == "" {
		spec.App.IngressHost = defaultIngressHost
	}

	if spec.Source.Branch == "" {
		spec.Source.Branch = DefaultBranch
	}

	if spec.Build.Command == "" {
		spec.Build.Command = defaultBuildCommand
	}

	if spec.Build.TestCommand == "" {
		spec.Build.TestCommand = defaultTestCommand
	}

	if spec.Analysis.Command == "" {
		spec.Analysis.Command = defaultAnalysisCommand
	}

	if spec.Image.Registry == "" {
		spec.Image.Registry = DefaultRegistry
	}

	if spec.Image.Repository == "" && spec.App.Name != "" {
		spec.Image.Repository = spec.App.Name
	}

	if spec.Image.Dockerfile == "" {
		spec.Image.Dockerfile = DefaultDockerfile
	}

	if spec.Image.Context == "" {
		spec.Image.Context = "."
	}

	if spec.Manifests.Branch == "" {
		spec.Manifests.Branch = DefaultBranch
	}

	if spec.Manifests.Path == "" {
		spec.Manifests.Path = DefaultManifestsPath
	}

	if spec.Manifests.DeploymentFile == "" {
		spec.Manifests.DeploymentFile = DefaultDeploymentFile
	}

	if spec.Manifests.AuthorName == "" {
		spec.Manifests.AuthorName = defaultAuthorName
	}

	if spec.Manifests.AuthorEmail == "" {
		spec.Manifests.AuthorEmail = defaultAuthorEmail
	}

	if spec.Cluster.Kubeconfig == "" {
		spec.Cluster.Kubeconfig = defaultKubeconfig
	}

	if spec.Cluster.Namespace == "" {
		spec.Cluster.Namespace = DefaultNamespace
	}

	if spec.Cluster.Application == "" {
		spec.Cluster.Application = spec.App.Name
	}

	if spec.Cluster.Timeout.Duration == 0 {
		spec.Cluster.Timeout = metav1.Duration{Duration: DefaultTimeout}
	}
}
