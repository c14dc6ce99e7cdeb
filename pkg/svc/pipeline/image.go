package pipeline

import (
	"context"
	"io"
	"path/filepath"

	dockerclient "github.com/sanketmote05/cicd-pipeline/pkg/client/docker"
)

// ImageBuildStage submits the checked-out source to the container engine to build
// the application image.
type ImageBuildStage struct {
	docker *dockerclient.Client
	writer io.Writer
}

// NewImageBuildStage creates an ImageBuildStage building via the given engine client.
func NewImageBuildStage(docker *dockerclient.Client, writer io.Writer) *ImageBuildStage {
	return &ImageBuildStage{docker: docker, writer: writer}
}

// Name implements Stage.
func (s *ImageBuildStage) Name() string { return "image-build" }

// Run builds the image from the configured context and Dockerfile, tagged with the
// commit-derived reference from the checkout stage.
func (s *ImageBuildStage) Run(ctx context.Context, state *State) error {
	spec := state.Pipeline.Spec.Image
	contextDir := filepath.Join(state.WorkDir, spec.Context)

	return s.docker.BuildImage(
		ctx,
		contextDir,
		spec.Dockerfile,
		[]string{state.Image.String()},
		s.writer,
	)
}

// ImagePushStage pushes the built image to the registry so the cluster can pull it.
type ImagePushStage struct {
	docker *dockerclient.Client
	writer io.Writer
}

// NewImagePushStage creates an ImagePushStage pushing via the given engine client.
func NewImagePushStage(docker *dockerclient.Client, writer io.Writer) *ImagePushStage {
	return &ImagePushStage{docker: docker, writer: writer}
}

// Name implements Stage.
func (s *ImagePushStage) Name() string { return "image-push" }

// Run pushes the commit-tagged image built by the previous stage.
func (s *ImagePushStage) Run(ctx context.Context, state *State) error {
	return s.docker.PushImage(ctx, state.Image.String(), state.Image.Registry, s.writer)
}
