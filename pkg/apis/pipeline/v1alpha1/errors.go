package v1alpha1

import "errors"

// Validation errors.
var (
	// ErrMissingSourceURL is returned when the source repository URL is not set.
	ErrMissingSourceURL = errors.New("spec.source.url must be set")
	// ErrMissingManifestsURL is returned when the manifest repository URL is not set.
	ErrMissingManifestsURL = errors.New("spec.manifests.url must be set")
	// ErrMissingRepository is returned when the image repository is not set.
	ErrMissingRepository = errors.New("spec.image.repository must be set")
	// ErrInvalidPort is returned when a port is outside the valid range.
	ErrInvalidPort = errors.New("port must be between 1 and 65535")
	// ErrInvalidReplicas is returned when the replica count is negative.
	ErrInvalidReplicas = errors.New("spec.app.replicas must not be negative")
	// ErrUnsupportedAPIVersion is returned for descriptors of a different apiVersion.
	ErrUnsupportedAPIVersion = errors.New("unsupported apiVersion")
	// ErrUnsupportedKind is returned for descriptors of a different kind.
	ErrUnsupportedKind = errors.New("unsupported kind")
)
