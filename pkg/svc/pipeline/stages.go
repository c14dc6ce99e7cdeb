package pipeline

import (
	"errors"
	"fmt"
	"io"

	dockerclient "github.com/sanketmote05/cicd-pipeline/pkg/client/docker"
	gitclient "github.com/sanketmote05/cicd-pipeline/pkg/client/git"
	"github.com/sanketmote05/cicd-pipeline/pkg/svc/promote"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/runner"
)

// ErrUnknownStage is returned when a requested stage name matches no stage.
var ErrUnknownStage = errors.New("unknown stage")

// DefaultStages returns the standard commit-to-pod stage order: checkout, build,
// test, analyze, image-build, image-push, manifest-update.
func DefaultStages(
	git *gitclient.Client,
	docker *dockerclient.Client,
	cmdRunner runner.CommandRunner,
	writer io.Writer,
) []Stage {
	return []Stage{
		NewCheckoutStage(git),
		NewBuildStage(cmdRunner, writer),
		NewTestStage(cmdRunner, writer),
		NewAnalyzeStage(cmdRunner, writer),
		NewImageBuildStage(docker, writer),
		NewImagePushStage(docker, writer),
		NewPromoteStage(promote.NewPromoter(git), writer),
	}
}

// FilterStages returns the stages whose names appear in names, preserving the
// stage order. An empty names list selects every stage.
func FilterStages(stages []Stage, names []string) ([]Stage, error) {
	if len(names) == 0 {
		return stages, nil
	}

	known := make(map[string]bool, len(stages))
	for _, stage := range stages {
		known[stage.Name()] = true
	}

	wanted := make(map[string]bool, len(names))

	for _, name := range names {
		if !known[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, name)
		}

		wanted[name] = true
	}

	selected := make([]Stage, 0, len(wanted))

	for _, stage := range stages {
		if wanted[stage.Name()] {
			selected = append(selected, stage)
		}
	}

	return selected, nil
}
