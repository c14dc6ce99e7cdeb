package v1alpha1_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
)

func TestNewPipeline(t *testing.T) {
	t.Parallel()

	pipeline := v1alpha1.NewPipeline()

	assert.Equal(t, v1alpha1.APIVersion, pipeline.APIVersion)
	assert.Equal(t, v1alpha1.Kind, pipeline.Kind)
	assert.Equal(t, v1alpha1.DefaultAppName, pipeline.Spec.App.Name)
	assert.Equal(t, v1alpha1.DefaultContainerPort, pipeline.Spec.App.ContainerPort)
	assert.Equal(t, v1alpha1.DefaultReplicas, pipeline.Spec.App.Replicas)
	assert.Equal(t, v1alpha1.DefaultRegistry, pipeline.Spec.Image.Registry)
	assert.Equal(t, v1alpha1.DefaultManifestsPath, pipeline.Spec.Manifests.Path)
	assert.Equal(t, v1alpha1.DefaultTimeout, pipeline.Spec.Cluster.Timeout.Duration)
}

func TestSetDefaultsDerivedValues(t *testing.T) {
	t.Parallel()

	pipeline := &v1alpha1.Pipeline{}
	pipeline.Spec.App.Name = "hello-world"
	pipeline.SetDefaults()

	// Repository and the GitOps application both derive from the app name.
	assert.Equal(t, "hello-world", pipeline.Spec.Image.Repository)
	assert.Equal(t, "hello-world", pipeline.Spec.Cluster.Application)
}

func TestSetDefaultsKeepsConfiguredValues(t *testing.T) {
	t.Parallel()

	pipeline := &v1alpha1.Pipeline{}
	pipeline.Spec.App.ContainerPort = 9090
	pipeline.Spec.Build.Command = "make package"
	pipeline.Spec.Cluster.Timeout = metav1.Duration{Duration: time.Minute}
	pipeline.SetDefaults()

	assert.Equal(t, int32(9090), pipeline.Spec.App.ContainerPort)
	assert.Equal(t, "make package", pipeline.Spec.Build.Command)
	assert.Equal(t, time.Minute, pipeline.Spec.Cluster.Timeout.Duration)
}

//nolint:funlen // Table-driven tests are naturally long.
func TestValidate(t *testing.T) {
	t.Parallel()

	validPipeline := func() *v1alpha1.Pipeline {
		pipeline := v1alpha1.NewPipeline()
		pipeline.Spec.Source.URL = "https://example.com/hello-world.git"
		pipeline.Spec.Manifests.URL = "https://example.com/hello-world-manifests.git"

		return pipeline
	}

	tests := []struct {
		name     string
		mutate   func(*v1alpha1.Pipeline)
		expected error
	}{
		{
			name:     "valid",
			mutate:   func(*v1alpha1.Pipeline) {},
			expected: nil,
		},
		{
			name: "missing source url",
			mutate: func(p *v1alpha1.Pipeline) {
				p.Spec.Source.URL = ""
			},
			expected: v1alpha1.ErrMissingSourceURL,
		},
		{
			name: "missing manifests url",
			mutate: func(p *v1alpha1.Pipeline) {
				p.Spec.Manifests.URL = ""
			},
			expected: v1alpha1.ErrMissingManifestsURL,
		},
		{
			name: "missing repository",
			mutate: func(p *v1alpha1.Pipeline) {
				p.Spec.Image.Repository = ""
			},
			expected: v1alpha1.ErrMissingRepository,
		},
		{
			name: "container port out of range",
			mutate: func(p *v1alpha1.Pipeline) {
				p.Spec.App.ContainerPort = 70000
			},
			expected: v1alpha1.ErrInvalidPort,
		},
		{
			name: "negative replicas",
			mutate: func(p *v1alpha1.Pipeline) {
				p.Spec.App.Replicas = -1
			},
			expected: v1alpha1.ErrInvalidReplicas,
		},
		{
			name: "wrong api version",
			mutate: func(p *v1alpha1.Pipeline) {
				p.APIVersion = "other/v1"
			},
			expected: v1alpha1.ErrUnsupportedAPIVersion,
		},
		{
			name: "wrong kind",
			mutate: func(p *v1alpha1.Pipeline) {
				p.Kind = "Cluster"
			},
			expected: v1alpha1.ErrUnsupportedKind,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			pipeline := validPipeline()
			testCase.mutate(pipeline)

			err := pipeline.Validate()

			if testCase.expected == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, testCase.expected)
			}
		})
	}
}
