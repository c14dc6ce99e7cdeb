package scaffolder_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil/scaffolder"
)

func testConfig() v1alpha1.Pipeline {
	cfg := v1alpha1.NewPipeline()
	cfg.Spec.App.Name = "hello-world"
	cfg.Spec.Source.URL = "https://example.com/hello-world.git"
	cfg.Spec.Manifests.URL = "https://example.com/hello-world-manifests.git"
	cfg.SetDefaults()

	return *cfg
}

func scaffoldedFiles() []string {
	return []string{
		"pipeline.yaml",
		"Dockerfile",
		filepath.Join("k8s", "deployment.yaml"),
		filepath.Join("k8s", "service.yaml"),
		filepath.Join("k8s", "ingress.yaml"),
		filepath.Join("k8s", "kustomization.yaml"),
		"pom.xml",
		filepath.Join("src", "main", "java", "com", "example", "App.java"),
		filepath.Join("src", "test", "java", "com", "example", "AppTest.java"),
	}
}

func TestScaffoldGeneratesProject(t *testing.T) {
	t.Parallel()

	output := t.TempDir()

	var out bytes.Buffer

	err := scaffolder.NewScaffolder(testConfig(), &out).Scaffold(output, false)
	require.NoError(t, err)

	for _, file := range scaffoldedFiles() {
		assert.FileExists(t, filepath.Join(output, file))
	}

	dockerfile, err := os.ReadFile(filepath.Join(output, "Dockerfile"))
	require.NoError(t, err)
	assert.Contains(t, string(dockerfile), "EXPOSE 8080")
	assert.Contains(t, string(dockerfile), "COPY target/*.jar app.jar")

	descriptor, err := os.ReadFile(filepath.Join(output, "pipeline.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(descriptor), "kind: Pipeline")
	assert.Contains(t, string(descriptor), "hello-world")

	deployment, err := os.ReadFile(filepath.Join(output, "k8s", "deployment.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(deployment), "image: docker.io/hello-world:latest")
}

func TestScaffoldSkipsExistingFiles(t *testing.T) {
	t.Parallel()

	output := t.TempDir()
	existing := filepath.Join(output, "Dockerfile")

	err := os.WriteFile(existing, []byte("FROM scratch\n"), 0o600)
	require.NoError(t, err)

	err = scaffolder.NewScaffolder(testConfig(), bytes.NewBuffer(nil)).Scaffold(output, false)
	require.NoError(t, err)

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "FROM scratch\n", string(content))
}

func TestScaffoldForceOverwrites(t *testing.T) {
	t.Parallel()

	output := t.TempDir()
	existing := filepath.Join(output, "Dockerfile")

	err := os.WriteFile(existing, []byte("FROM scratch\n"), 0o600)
	require.NoError(t, err)

	err = scaffolder.NewScaffolder(testConfig(), bytes.NewBuffer(nil)).Scaffold(output, true)
	require.NoError(t, err)

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(content), "eclipse-temurin")
}

func TestScaffoldEmptyOutput(t *testing.T) {
	t.Parallel()

	err := scaffolder.NewScaffolder(testConfig(), bytes.NewBuffer(nil)).Scaffold("", false)
	require.ErrorIs(t, err, scaffolder.ErrEmptyOutputDirectory)
}
