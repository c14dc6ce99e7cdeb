package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gitclient "github.com/sanketmote05/cicd-pipeline/pkg/client/git"
	"github.com/sanketmote05/cicd-pipeline/pkg/svc/image"
)

// CheckoutStage clones the application source and records the commit the rest of
// the run is pinned to.
type CheckoutStage struct {
	git *gitclient.Client
}

// NewCheckoutStage creates a CheckoutStage cloning via the given git client.
func NewCheckoutStage(git *gitclient.Client) *CheckoutStage {
	return &CheckoutStage{git: git}
}

// Name implements Stage.
func (s *CheckoutStage) Name() string { return "checkout" }

// Run clones the source repository, resolves the short commit SHA, and derives
// the image reference every later stage uses. The SHA-derived tag pins the whole
// run to one source revision.
func (s *CheckoutStage) Run(ctx context.Context, state *State) error {
	spec := state.Pipeline.Spec

	cloneDir, err := os.MkdirTemp("", "cicd-src-*")
	if err != nil {
		return fmt.Errorf("create source work directory: %w", err)
	}

	state.AddCleanup(func() { _ = os.RemoveAll(cloneDir) })

	repo, err := s.git.Clone(ctx, cloneDir, spec.Source.URL, spec.Source.Branch)
	if err != nil {
		return err
	}

	sha, err := repo.HeadShortSHA()
	if err != nil {
		return err
	}

	ref, err := image.NewReference(spec.Image.Registry, spec.Image.Repository, sha)
	if err != nil {
		return err
	}

	state.WorkDir = filepath.Join(cloneDir, spec.Source.Path)
	state.CommitSHA = sha
	state.Image = ref

	return nil
}
