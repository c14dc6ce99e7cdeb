package pipeline

import (
	"context"
	"io"

	"github.com/sanketmote05/cicd-pipeline/pkg/svc/promote"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

// PromoteStage rewrites the manifests repository to reference the pushed image.
// This commit is the pipeline's hand-off point: from here the GitOps agent owns
// delivery.
type PromoteStage struct {
	promoter *promote.Promoter
	writer   io.Writer
}

// NewPromoteStage creates a PromoteStage using the given promoter.
func NewPromoteStage(promoter *promote.Promoter, writer io.Writer) *PromoteStage {
	return &PromoteStage{promoter: promoter, writer: writer}
}

// Name implements Stage.
func (s *PromoteStage) Name() string { return "manifest-update" }

// Run updates the deployment manifest's image line and pushes the change.
// Re-running a pipeline for an already promoted commit leaves the manifests
// untouched.
func (s *PromoteStage) Run(ctx context.Context, state *State) error {
	result, err := s.promoter.Promote(ctx, state.Pipeline.Spec.Manifests, state.Image)
	if err != nil {
		return err
	}

	state.ManifestsChanged = result.Changed
	state.ManifestCommit = result.CommitSHA

	if !result.Changed {
		notify.Infof(s.writer, "manifests already reference %s, nothing to promote",
			state.Image.String())
	}

	return nil
}
