package deploymentgenerator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	deploymentgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/deployment"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	snaps.Clean(m, snaps.CleanOpts{Sort: true})

	os.Exit(exitCode)
}

func testApp() v1alpha1.AppSpec {
	return v1alpha1.AppSpec{
		Name:          "hello-world",
		ContainerPort: 8080,
		ServicePort:   80,
		Replicas:      2,
		IngressHost:   "hello-world.local",
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	model := deploymentgenerator.Build(testApp(), "docker.io/sanket/hello-world:3f2a1b4c5d6e")

	out, err := deploymentgenerator.NewGenerator().Generate(model, yamlgenerator.Options{})
	require.NoError(t, err)

	snaps.MatchSnapshot(t, out)
}

func TestGenerateWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deployment.yaml")
	model := deploymentgenerator.Build(testApp(), "docker.io/sanket/hello-world:3f2a1b4c5d6e")

	out, err := deploymentgenerator.NewGenerator().
		Generate(model, yamlgenerator.Options{Output: path})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out, string(content))
	assert.Contains(t, string(content), "kind: Deployment")
	assert.Contains(t, string(content), "image: docker.io/sanket/hello-world:3f2a1b4c5d6e")
}

func TestGenerateSkipsExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deployment.yaml")

	err := os.WriteFile(path, []byte("keep me"), 0o600)
	require.NoError(t, err)

	model := deploymentgenerator.Build(testApp(), "docker.io/sanket/hello-world:3f2a1b4c5d6e")

	_, err = deploymentgenerator.NewGenerator().
		Generate(model, yamlgenerator.Options{Output: path})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}
