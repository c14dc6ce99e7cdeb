package kustomizationgenerator_test

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kustomizationgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/kustomization"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	snaps.Clean(m, snaps.CleanOpts{Sort: true})

	os.Exit(exitCode)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	model := kustomizationgenerator.Build("deployment.yaml", "service.yaml", "ingress.yaml")

	out, err := kustomizationgenerator.NewGenerator().Generate(model, yamlgenerator.Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "kind: Kustomization")
	assert.Contains(t, out, "deployment.yaml")
	snaps.MatchSnapshot(t, out)
}
