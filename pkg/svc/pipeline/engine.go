// Package pipeline runs the commit-to-pod delivery stages in order.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/svc/image"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/timer"
)

// State carries data between stages of a single run.
type State struct {
	// Pipeline is the descriptor driving the run.
	Pipeline *v1alpha1.Pipeline
	// RunID uniquely identifies this run.
	RunID string
	// WorkDir is the checked-out application source directory.
	WorkDir string
	// CommitSHA is the short SHA of the checked-out source commit.
	CommitSHA string
	// Image is the reference the image stages build and push, tagged with CommitSHA.
	Image image.Reference
	// ManifestCommit is the manifests-repo commit created by the promote stage.
	ManifestCommit string
	// ManifestsChanged is false when promotion found the manifests already current.
	ManifestsChanged bool

	cleanups []func()
}

// AddCleanup registers a function run after the pipeline finishes, in reverse order.
func (s *State) AddCleanup(cleanup func()) {
	s.cleanups = append(s.cleanups, cleanup)
}

func (s *State) runCleanups() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
}

// Stage is one step of a pipeline run. Stages mutate the shared State and report
// failure through their error return; the engine stops at the first failure.
type Stage interface {
	// Name returns the stage name shown in run output.
	Name() string
	// Run executes the stage.
	Run(ctx context.Context, state *State) error
}

// Engine executes stages sequentially with per-stage timing and output.
type Engine struct {
	writer io.Writer
	stages []Stage
}

// NewEngine creates an Engine running the given stages in order.
func NewEngine(writer io.Writer, stages ...Stage) *Engine {
	return &Engine{writer: writer, stages: stages}
}

// Run executes all stages against pipeline and returns the final state.
// The first stage failure aborts the run; later stages are not attempted.
func (e *Engine) Run(ctx context.Context, pipeline *v1alpha1.Pipeline) (*State, error) {
	state := &State{
		Pipeline: pipeline,
		RunID:    uuid.NewString(),
	}
	defer state.runCleanups()

	notify.Titlef(e.writer, "🚀", "running pipeline for '%s' (run %s)",
		pipeline.Spec.App.Name, state.RunID)

	tmr := timer.New()
	tmr.Start()

	for _, stage := range e.stages {
		tmr.NewStage()
		notify.Activityf(e.writer, "stage '%s'", stage.Name())

		err := stage.Run(ctx, state)
		if err != nil {
			notify.Errorf(e.writer, "stage '%s' failed: %v", stage.Name(), err)

			return state, fmt.Errorf("stage %q: %w", stage.Name(), err)
		}

		notify.SuccessWithTimerf(e.writer, tmr, "stage '%s' succeeded", stage.Name())
	}

	notify.Successf(e.writer, "pipeline run %s complete", state.RunID)

	return state, nil
}
