package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanketmote05/cicd-pipeline/pkg/svc/pipeline"
)

func namedStages(runs *[]string, names ...string) []pipeline.Stage {
	stages := make([]pipeline.Stage, 0, len(names))
	for _, name := range names {
		stages = append(stages, &recordingStage{name: name, runs: runs})
	}

	return stages
}

func TestFilterStagesKeepsPipelineOrder(t *testing.T) {
	t.Parallel()

	var runs []string

	stages := namedStages(&runs, "checkout", "build", "test", "image-build")

	selected, err := pipeline.FilterStages(stages, []string{"image-build", "checkout"})
	require.NoError(t, err)
	require.Len(t, selected, 2)

	assert.Equal(t, "checkout", selected[0].Name())
	assert.Equal(t, "image-build", selected[1].Name())
}

func TestFilterStagesEmptySelectsAll(t *testing.T) {
	t.Parallel()

	var runs []string

	stages := namedStages(&runs, "checkout", "build")

	selected, err := pipeline.FilterStages(stages, nil)
	require.NoError(t, err)

	assert.Equal(t, stages, selected)
}

func TestFilterStagesUnknownName(t *testing.T) {
	t.Parallel()

	var runs []string

	stages := namedStages(&runs, "checkout", "build")

	_, err := pipeline.FilterStages(stages, []string{"checkout", "deploy"})
	require.ErrorIs(t, err, pipeline.ErrUnknownStage)
	assert.Contains(t, err.Error(), "deploy")
}
