package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	// Group is the API group for cicd-pipeline.
	Group = "cicd.sanketmote.dev"
	// Version is the API version for cicd-pipeline.
	Version = "v1alpha1"
	// Kind is the kind for pipeline descriptors.
	Kind = "Pipeline"
	// APIVersion is the full API version for cicd-pipeline.
	APIVersion = Group + "/" + Version
)

// Pipeline is the descriptor for a commit-to-pod delivery pipeline.
// It contains TypeMeta for API versioning information and Spec for the pipeline
// specification.
type Pipeline struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec,omitempty"`
}

// Spec defines the desired pipeline behavior.
type Spec struct {
	App       AppSpec       `json:"app,omitzero"`
	Source    SourceSpec    `json:"source,omitzero"`
	Build     BuildSpec     `json:"build,omitzero"`
	Analysis  AnalysisSpec  `json:"analysis,omitzero"`
	Image     ImageSpec     `json:"image,omitzero"`
	Manifests ManifestsSpec `json:"manifests,omitzero"`
	Cluster   ClusterSpec   `json:"cluster,omitzero"`
	// Env lists environment variables exported to the build, test, and analyze
	// commands, e.g. a SONAR_TOKEN for the analysis server.
	Env map[string]string `json:"env,omitzero"`
}

// AppSpec names the application and the shape of its deployment, service, and
// ingress manifests.
type AppSpec struct {
	Name          string `default:"app"        json:"name,omitzero"`
	ContainerPort int32  `default:"8080"       json:"containerPort,omitzero"`
	ServicePort   int32  `default:"80"         json:"servicePort,omitzero"`
	Replicas      int32  `default:"2"          json:"replicas,omitzero"`
	IngressHost   string `default:"app.local"  json:"ingressHost,omitzero"`
}

// SourceSpec identifies the application source repository for the checkout stage.
type SourceSpec struct {
	URL    string `json:"url,omitzero"`
	Branch string `default:"main" json:"branch,omitzero"`
	// Path is an optional subdirectory within the repository that contains the
	// application (monorepo layouts).
	Path string `json:"path,omitzero"`
}

// BuildSpec configures the external build tool invocations.
type BuildSpec struct {
	Command     string `default:"mvn -B -DskipTests clean package" json:"command,omitzero"`
	TestCommand string `default:"mvn -B test"                      json:"testCommand,omitzero"`
}

// AnalysisSpec configures the external static-analysis invocation.
type AnalysisSpec struct {
	Enabled bool   `json:"enabled,omitzero"`
	Command string `default:"mvn -B sonar:sonar" json:"command,omitzero"`
}

// ImageSpec configures the container image build and push stages.
type ImageSpec struct {
	// Registry is the registry host (and optional port), e.g. "docker.io" or
	// "localhost:5000".
	Registry string `default:"docker.io" json:"registry,omitzero"`
	// Repository is the image repository within the registry, e.g. "sanket/app".
	Repository string `json:"repository,omitzero"`
	Dockerfile string `default:"Dockerfile" json:"dockerfile,omitzero"`
	// Context is the build context directory relative to the checked-out source.
	Context string `default:"." json:"context,omitzero"`
}

// ManifestsSpec identifies the manifest repository updated by the promote stage.
type ManifestsSpec struct {
	URL    string `json:"url,omitzero"`
	Branch string `default:"main" json:"branch,omitzero"`
	// Path is the directory within the manifest repository holding the manifests.
	Path string `default:"k8s" json:"path,omitzero"`
	// DeploymentFile is the file whose image line the pipeline owns.
	DeploymentFile string `default:"deployment.yaml" json:"deploymentFile,omitzero"`
	AuthorName     string `default:"cicd-pipeline"   json:"authorName,omitzero"`
	AuthorEmail    string `default:"cicd@localhost"  json:"authorEmail,omitzero"`
}

// ClusterSpec defines how the tool reaches the cluster for sync and rollout checks.
type ClusterSpec struct {
	Kubeconfig string `default:"~/.kube/config" json:"kubeconfig,omitzero"`
	Context    string `json:"context,omitzero"`
	Namespace  string `default:"default"        json:"namespace,omitzero"`
	// Application is the reconciliation agent's application resource to sync.
	Application string          `default:"app" json:"application,omitzero"`
	Timeout     metav1.Duration `json:"timeout,omitzero"`
}
