package docker_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dockerclient "github.com/sanketmote05/cicd-pipeline/pkg/client/docker"
)

// stubAPI fakes the engine API for the build and push paths.
type stubAPI struct {
	client.APIClient

	buildOptions types.ImageBuildOptions
	buildStream  string
	pushRef      string
	pushOptions  image.PushOptions
	pushStream   string
}

func (s *stubAPI) ImageBuild(
	_ context.Context,
	buildContext io.Reader,
	options types.ImageBuildOptions,
) (types.ImageBuildResponse, error) {
	// Drain the tar stream the way the engine would.
	_, _ = io.Copy(io.Discard, buildContext)
	s.buildOptions = options

	return types.ImageBuildResponse{
		Body: io.NopCloser(strings.NewReader(s.buildStream)),
	}, nil
}

func (s *stubAPI) ImagePush(
	_ context.Context,
	ref string,
	options image.PushOptions,
) (io.ReadCloser, error) {
	s.pushRef = ref
	s.pushOptions = options

	return io.NopCloser(strings.NewReader(s.pushStream)), nil
}

func TestBuildImage(t *testing.T) {
	t.Parallel()

	contextDir := t.TempDir()
	err := os.WriteFile(contextDir+"/Dockerfile", []byte("FROM scratch\n"), 0o600)
	require.NoError(t, err)

	api := &stubAPI{buildStream: `{"stream":"Step 1/1 : FROM scratch\n"}`}

	var out bytes.Buffer

	err = dockerclient.NewClientWithAPI(api).BuildImage(
		context.Background(),
		contextDir,
		"Dockerfile",
		[]string{"docker.io/sanket/hello-world:3f2a1b4c5d6e"},
		&out,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"docker.io/sanket/hello-world:3f2a1b4c5d6e"}, api.buildOptions.Tags)
	assert.Equal(t, "Dockerfile", api.buildOptions.Dockerfile)
	assert.True(t, api.buildOptions.Remove)
	assert.Contains(t, out.String(), "Step 1/1")
}

func TestBuildImageEngineError(t *testing.T) {
	t.Parallel()

	contextDir := t.TempDir()
	err := os.WriteFile(contextDir+"/Dockerfile", []byte("FROM scratch\n"), 0o600)
	require.NoError(t, err)

	api := &stubAPI{
		buildStream: `{"errorDetail":{"message":"no such base image"},"error":"no such base image"}`,
	}

	err = dockerclient.NewClientWithAPI(api).BuildImage(
		context.Background(), contextDir, "Dockerfile", nil, io.Discard,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such base image")
}

func TestPushImageAnonymous(t *testing.T) {
	t.Parallel()

	api := &stubAPI{pushStream: `{"status":"latest: digest: sha256:abc size: 1"}`}

	err := dockerclient.NewClientWithAPI(api).PushImage(
		context.Background(),
		"docker.io/sanket/hello-world:3f2a1b4c5d6e",
		"docker.io",
		io.Discard,
	)
	require.NoError(t, err)

	assert.Equal(t, "docker.io/sanket/hello-world:3f2a1b4c5d6e", api.pushRef)
	assert.Empty(t, api.pushOptions.RegistryAuth)
}

func TestPushImageWithCredentials(t *testing.T) {
	t.Setenv(dockerclient.UsernameEnvVar, "sanket")
	t.Setenv(dockerclient.PasswordEnvVar, "secret")

	api := &stubAPI{pushStream: `{"status":"pushed"}`}

	err := dockerclient.NewClientWithAPI(api).PushImage(
		context.Background(),
		"docker.io/sanket/hello-world:3f2a1b4c5d6e",
		"docker.io",
		io.Discard,
	)
	require.NoError(t, err)

	assert.NotEmpty(t, api.pushOptions.RegistryAuth)
}
