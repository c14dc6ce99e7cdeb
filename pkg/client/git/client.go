// Package git wraps the go-git operations used by the checkout and promote stages.
package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	transporthttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

const (
	// ShortSHALength is the number of SHA characters used for image tags.
	ShortSHALength = 12

	// TokenEnvVar holds an optional bearer token for HTTPS remotes.
	TokenEnvVar = "CICD_GIT_TOKEN"
	// UsernameEnvVar holds the username paired with TokenEnvVar. Defaults to "git".
	UsernameEnvVar = "CICD_GIT_USERNAME"
)

// ErrNothingToCommit is returned by CommitAndPush when the worktree is clean.
var ErrNothingToCommit = errors.New("nothing to commit")

// Client performs clone, commit, and push operations against remote repositories.
type Client struct {
	progress io.Writer
}

// NewClient creates a git client. Clone progress is written to progress when not nil.
func NewClient(progress io.Writer) *Client {
	return &Client{progress: progress}
}

// Repository is a cloned repository rooted at Dir.
type Repository struct {
	Dir  string
	repo *gogit.Repository
}

// Clone performs a shallow single-branch clone of url at branch into dir.
func (c *Client) Clone(ctx context.Context, dir, url, branch string) (*Repository, error) {
	repo, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:           url,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         1,
		Progress:      c.progress,
		Auth:          authFromEnv(),
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s (branch %s): %w", url, branch, err)
	}

	return &Repository{Dir: dir, repo: repo}, nil
}

// Open opens an existing repository rooted at dir.
func Open(dir string) (*Repository, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", dir, err)
	}

	return &Repository{Dir: dir, repo: repo}, nil
}

// HeadShortSHA returns the first ShortSHALength characters of the HEAD commit SHA.
func (r *Repository) HeadShortSHA() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	return head.Hash().String()[:ShortSHALength], nil
}

// Signature identifies the commit author for CommitAndPush.
type Signature struct {
	Name  string
	Email string
}

// CommitAndPush stages all changes, commits them with message, and pushes to the
// remote. Returns the new commit SHA, or ErrNothingToCommit when the worktree has
// no changes, so callers can skip empty commits.
func (r *Repository) CommitAndPush(
	ctx context.Context,
	message string,
	author Signature,
) (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return "", fmt.Errorf("read worktree status: %w", err)
	}

	if status.IsClean() {
		return "", ErrNothingToCommit
	}

	err = worktree.AddWithOptions(&gogit.AddOptions{All: true})
	if err != nil {
		return "", fmt.Errorf("stage changes: %w", err)
	}

	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	err = r.repo.PushContext(ctx, &gogit.PushOptions{
		Auth: authFromEnv(),
	})
	if err != nil {
		return "", fmt.Errorf("push: %w", err)
	}

	return hash.String(), nil
}

// authFromEnv builds basic auth from CICD_GIT_TOKEN when set.
// Returns nil otherwise, letting go-git fall back to the ambient credential helpers.
func authFromEnv() transport.AuthMethod {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return nil
	}

	username := os.Getenv(UsernameEnvVar)
	if username == "" {
		username = "git"
	}

	return &transporthttp.BasicAuth{Username: username, Password: token}
}
