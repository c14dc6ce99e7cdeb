package promote_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	gitclient "github.com/sanketmote05/cicd-pipeline/pkg/client/git"
	"github.com/sanketmote05/cicd-pipeline/pkg/svc/image"
	"github.com/sanketmote05/cicd-pipeline/pkg/svc/promote"
)

const deploymentManifest = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: hello-world
spec:
  replicas: 2
  template:
    spec:
      containers:
        # main application container
        - name: hello-world
          image: docker.io/sanket/hello-world:aaaaaaaaaaaa
          ports:
            - containerPort: 8080
        - name: sidecar
          image: docker.io/other/sidecar:v1
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deployment.yaml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func mustReference(t *testing.T, tag string) image.Reference {
	t.Helper()

	ref, err := image.NewReference("docker.io", "sanket/hello-world", tag)
	require.NoError(t, err)

	return ref
}

func TestUpdateDeploymentImage(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, deploymentManifest)

	changed, err := promote.UpdateDeploymentImage(path, mustReference(t, "bbbbbbbbbbbb"))
	require.NoError(t, err)
	assert.True(t, changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "docker.io/sanket/hello-world:bbbbbbbbbbbb")
	// Only the owned container's image changes; formatting and comments survive.
	assert.Contains(t, string(content), "docker.io/other/sidecar:v1")
	assert.Contains(t, string(content), "# main application container")
}

func TestUpdateDeploymentImageSameTagIsNoOp(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, deploymentManifest)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err := promote.UpdateDeploymentImage(path, mustReference(t, "aaaaaaaaaaaa"))
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestUpdateDeploymentImageNoMatchingContainer(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, deploymentManifest)

	ref, err := image.NewReference("docker.io", "sanket/unrelated", "cccccccccccc")
	require.NoError(t, err)

	_, err = promote.UpdateDeploymentImage(path, ref)
	require.ErrorIs(t, err, promote.ErrNoMatchingContainer)
}

func TestUpdateDeploymentImageMissingContainers(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: cfg\n")

	_, err := promote.UpdateDeploymentImage(path, mustReference(t, "bbbbbbbbbbbb"))
	require.ErrorIs(t, err, promote.ErrNoMatchingContainer)
}

func TestUpdateDeploymentImageMissingFile(t *testing.T) {
	t.Parallel()

	_, err := promote.UpdateDeploymentImage(
		filepath.Join(t.TempDir(), "missing.yaml"),
		mustReference(t, "bbbbbbbbbbbb"),
	)
	require.Error(t, err)
}

// initManifestsRemote creates a bare repository seeded with the deployment
// manifest under k8s/, standing in for the remote manifests repository.
func initManifestsRemote(t *testing.T) string {
	t.Helper()

	remoteDir := t.TempDir()

	_, err := gogit.PlainInit(remoteDir, true)
	require.NoError(t, err)

	seedDir := t.TempDir()

	seed, err := gogit.PlainInit(seedDir, false)
	require.NoError(t, err)

	_, err = seed.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{remoteDir},
	})
	require.NoError(t, err)

	err = os.MkdirAll(filepath.Join(seedDir, "k8s"), 0o750)
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(seedDir, "k8s", "deployment.yaml"), []byte(deploymentManifest), 0o600)
	require.NoError(t, err)

	worktree, err := seed.Worktree()
	require.NoError(t, err)

	_, err = worktree.Add(".")
	require.NoError(t, err)

	_, err = worktree.Commit("seed manifests", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	err = seed.Push(&gogit.PushOptions{})
	require.NoError(t, err)

	return remoteDir
}

func TestPromotePushesManifestUpdate(t *testing.T) {
	t.Parallel()

	remote := initManifestsRemote(t)
	manifests := v1alpha1.ManifestsSpec{
		URL:            remote,
		Branch:         "master",
		Path:           "k8s",
		DeploymentFile: "deployment.yaml",
		AuthorName:     "cicd-pipeline",
		AuthorEmail:    "cicd@localhost",
	}

	promoter := promote.NewPromoter(gitclient.NewClient(nil))

	result, err := promoter.Promote(context.Background(), manifests, mustReference(t, "bbbbbbbbbbbb"))
	require.NoError(t, err)
	assert.True(t, result.Changed)
	require.NotEmpty(t, result.CommitSHA)

	remoteRepo, err := gogit.PlainOpen(remote)
	require.NoError(t, err)

	ref, err := remoteRepo.Reference(plumbing.NewBranchReferenceName("master"), true)
	require.NoError(t, err)
	assert.Equal(t, result.CommitSHA, ref.Hash().String())

	commit, err := remoteRepo.CommitObject(ref.Hash())
	require.NoError(t, err)
	assert.Equal(t, "deploy docker.io/sanket/hello-world:bbbbbbbbbbbb", commit.Message)
	assert.Equal(t, "cicd-pipeline", commit.Author.Name)
}

func TestPromoteSameTagSkipsCommit(t *testing.T) {
	t.Parallel()

	remote := initManifestsRemote(t)
	manifests := v1alpha1.ManifestsSpec{
		URL:            remote,
		Branch:         "master",
		Path:           "k8s",
		DeploymentFile: "deployment.yaml",
		AuthorName:     "cicd-pipeline",
		AuthorEmail:    "cicd@localhost",
	}

	promoter := promote.NewPromoter(gitclient.NewClient(nil))

	first, err := promoter.Promote(context.Background(), manifests, mustReference(t, "bbbbbbbbbbbb"))
	require.NoError(t, err)
	require.True(t, first.Changed)

	before, err := gogit.PlainOpen(remote)
	require.NoError(t, err)

	beforeRef, err := before.Reference(plumbing.NewBranchReferenceName("master"), true)
	require.NoError(t, err)

	second, err := promoter.Promote(context.Background(), manifests, mustReference(t, "bbbbbbbbbbbb"))
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Empty(t, second.CommitSHA)

	afterRef, err := before.Reference(plumbing.NewBranchReferenceName("master"), true)
	require.NoError(t, err)
	assert.Equal(t, beforeRef.Hash(), afterRef.Hash())
}
