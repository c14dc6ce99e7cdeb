// Package promote updates GitOps manifests to point at a freshly pushed image.
//
// The cluster-side rollout is performed by the GitOps agent watching the
// manifests repository; promotion only rewrites and pushes the desired state.
package promote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/kustomize/kyaml/yaml"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	gitclient "github.com/sanketmote05/cicd-pipeline/pkg/client/git"
	"github.com/sanketmote05/cicd-pipeline/pkg/svc/image"
)

// Promoter errors.
var (
	// ErrNoMatchingContainer is returned when the deployment manifest has no
	// container running an image from the promoted repository.
	ErrNoMatchingContainer = errors.New("no container matches the promoted image repository")
)

// Result describes the outcome of a promotion.
type Result struct {
	// Changed is false when the manifest already referenced the new tag.
	Changed bool
	// CommitSHA is the manifests-repo commit created by the promotion, empty when unchanged.
	CommitSHA string
}

// Promoter rewrites the image reference in a deployment manifest and pushes the change.
type Promoter struct {
	git *gitclient.Client
}

// NewPromoter creates a Promoter cloning and pushing via the given git client.
func NewPromoter(git *gitclient.Client) *Promoter {
	return &Promoter{git: git}
}

// Promote clones the manifests repository, rewrites the deployment's image to ref,
// and commits and pushes the change. Pushing the same tag twice is a no-op.
func (p *Promoter) Promote(
	ctx context.Context,
	manifests v1alpha1.ManifestsSpec,
	ref image.Reference,
) (Result, error) {
	workDir, err := os.MkdirTemp("", "cicd-manifests-*")
	if err != nil {
		return Result{}, fmt.Errorf("create manifests work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	repo, err := p.git.Clone(ctx, workDir, manifests.URL, manifests.Branch)
	if err != nil {
		return Result{}, fmt.Errorf("clone manifests repository: %w", err)
	}

	deploymentPath := filepath.Join(workDir, manifests.Path, manifests.DeploymentFile)

	changed, err := UpdateDeploymentImage(deploymentPath, ref)
	if err != nil {
		return Result{}, err
	}

	if !changed {
		return Result{Changed: false}, nil
	}

	message := fmt.Sprintf("deploy %s/%s:%s", ref.Registry, ref.Repository, ref.Tag)
	signature := gitclient.Signature{
		Name:  manifests.AuthorName,
		Email: manifests.AuthorEmail,
	}

	commitSHA, err := repo.CommitAndPush(ctx, message, signature)
	if err != nil {
		return Result{}, fmt.Errorf("push manifests update: %w", err)
	}

	return Result{Changed: true, CommitSHA: commitSHA}, nil
}

// UpdateDeploymentImage rewrites container images in the deployment manifest at path
// to the given reference, preserving the rest of the document's formatting.
// Containers are matched by image repository; it returns false when the manifest
// already references the exact tag.
func UpdateDeploymentImage(path string, ref image.Reference) (bool, error) {
	node, err := yaml.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read deployment manifest: %w", err)
	}

	containers, err := node.Pipe(yaml.Lookup("spec", "template", "spec", "containers"))
	if err != nil {
		return false, fmt.Errorf("lookup containers in %q: %w", path, err)
	}

	if containers == nil {
		return false, fmt.Errorf("%w: %s has no spec.template.spec.containers", ErrNoMatchingContainer, path)
	}

	repositoryPrefix := fmt.Sprintf("%s/%s:", ref.Registry, ref.Repository)
	matched := false
	changed := false

	err = containers.VisitElements(func(container *yaml.RNode) error {
		currentImage, err := container.GetString("image")
		if err != nil {
			return fmt.Errorf("read container image: %w", err)
		}

		if !strings.HasPrefix(currentImage, repositoryPrefix) {
			return nil
		}

		matched = true

		if currentImage == ref.String() {
			return nil
		}

		changed = true

		return container.PipeE(yaml.SetField("image", yaml.NewStringRNode(ref.String())))
	})
	if err != nil {
		return false, err
	}

	if !matched {
		return false, fmt.Errorf("%w: %s in %s", ErrNoMatchingContainer, repositoryPrefix, path)
	}

	if !changed {
		return false, nil
	}

	content, err := node.String()
	if err != nil {
		return false, fmt.Errorf("serialize deployment manifest: %w", err)
	}

	err = os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		return false, fmt.Errorf("write deployment manifest: %w", err)
	}

	return true, nil
}
