package pipeline

import (
	"context"
	"io"

	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/runner"
)

// CommandStage runs one external tool invocation in the checked-out source
// directory. The build, test, and analyze stages are all command stages; the
// external tool owns the work and its exit status is the stage verdict.
type CommandStage struct {
	name    string
	command func(state *State) string
	runner  runner.CommandRunner
	writer  io.Writer
}

// NewBuildStage creates the stage invoking the build tool's package command.
func NewBuildStage(cmdRunner runner.CommandRunner, writer io.Writer) *CommandStage {
	return &CommandStage{
		name:    "build",
		command: func(state *State) string { return state.Pipeline.Spec.Build.Command },
		runner:  cmdRunner,
		writer:  writer,
	}
}

// NewTestStage creates the stage invoking the build tool's test command.
func NewTestStage(cmdRunner runner.CommandRunner, writer io.Writer) *CommandStage {
	return &CommandStage{
		name:    "test",
		command: func(state *State) string { return state.Pipeline.Spec.Build.TestCommand },
		runner:  cmdRunner,
		writer:  writer,
	}
}

// NewAnalyzeStage creates the stage submitting the source to the analysis server.
// The stage is a no-op when analysis is disabled in the descriptor.
func NewAnalyzeStage(cmdRunner runner.CommandRunner, writer io.Writer) *CommandStage {
	return &CommandStage{
		name: "analyze",
		command: func(state *State) string {
			if !state.Pipeline.Spec.Analysis.Enabled {
				return ""
			}

			return state.Pipeline.Spec.Analysis.Command
		},
		runner: cmdRunner,
		writer: writer,
	}
}

// Name implements Stage.
func (s *CommandStage) Name() string { return s.name }

// Run executes the stage's command line in the source work directory.
func (s *CommandStage) Run(ctx context.Context, state *State) error {
	commandLine := s.command(state)
	if commandLine == "" {
		notify.Infof(s.writer, "stage '%s' has no command, skipping", s.name)

		return nil
	}

	_, err := s.runner.Run(ctx, state.WorkDir, commandLine)

	return err
}
