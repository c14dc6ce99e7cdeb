// Package image derives and validates container image references.
package image

import (
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"
)

// Reference is a fully qualified, validated container image reference.
type Reference struct {
	// Registry is the registry host, e.g. "docker.io" or "ghcr.io".
	Registry string
	// Repository is the path within the registry, e.g. "sanketmote/hello-world".
	Repository string
	// Tag identifies the image revision, derived from the source commit.
	Tag string
}

// NewReference builds and validates an image reference for a commit tag.
func NewReference(registry, repository, tag string) (Reference, error) {
	ref := Reference{Registry: registry, Repository: repository, Tag: tag}

	// Let the registry library catch malformed hosts, paths and tags up front
	// rather than failing at push time.
	_, err := name.NewTag(ref.String(), name.StrictValidation)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid image reference %q: %w", ref.String(), err)
	}

	return ref, nil
}

// String returns the reference in registry/repository:tag form.
func (r Reference) String() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}
