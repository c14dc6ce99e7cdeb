// Package docker wraps the container engine API used by the image-build and
// image-push stages. Building and storing layers is entirely the engine's job;
// this package only submits work and relays the engine's own progress and errors.
package docker

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
)

// Registry credential environment variables.
const (
	// UsernameEnvVar holds the registry username for pushes.
	UsernameEnvVar = "CICD_REGISTRY_USERNAME"
	// PasswordEnvVar holds the registry password or access token for pushes.
	PasswordEnvVar = "CICD_REGISTRY_PASSWORD"
)

// Client wraps the container engine API client.
type Client struct {
	api client.APIClient
}

// NewClient creates a client from the ambient engine environment (DOCKER_HOST etc.).
func NewClient() (*Client, error) {
	api, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}

	return &Client{api: api}, nil
}

// NewClientWithAPI creates a Client with a provided API client (for testing).
func NewClientWithAPI(api client.APIClient) *Client {
	return &Client{api: api}
}

// BuildImage builds an image from contextDir using the named Dockerfile and tags it.
// Build output is streamed to out; a failing build surfaces the daemon's error
// message.
func (c *Client) BuildImage(
	ctx context.Context,
	contextDir string,
	dockerfile string,
	tags []string,
	out io.Writer,
) error {
	buildContext, err := archive.TarWithOptions(contextDir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("create build context: %w", err)
	}
	defer buildContext.Close()

	resp, err := c.api.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       tags,
		Dockerfile: dockerfile,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("build image: %w", err)
	}
	defer resp.Body.Close()

	err = streamEngineOutput(resp.Body, out)
	if err != nil {
		return fmt.Errorf("build image: %w", err)
	}

	return nil
}

// PushImage pushes ref (host/repository:tag) to its registry.
// Credentials come from the environment; an empty auth config is sent for
// anonymous registries.
func (c *Client) PushImage(ctx context.Context, ref string, registryHost string, out io.Writer) error {
	auth, err := encodeRegistryAuth(registryHost)
	if err != nil {
		return err
	}

	reader, err := c.api.ImagePush(ctx, ref, image.PushOptions{RegistryAuth: auth})
	if err != nil {
		return fmt.Errorf("push image %s: %w", ref, err)
	}
	defer reader.Close()

	err = streamEngineOutput(reader, out)
	if err != nil {
		return fmt.Errorf("push image %s: %w", ref, err)
	}

	return nil
}

// streamEngineOutput relays the engine's JSON message stream to out and converts
// in-stream error messages into errors.
func streamEngineOutput(in io.Reader, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	err := jsonmessage.DisplayJSONMessagesStream(in, out, 0, false, nil)
	if err != nil {
		//nolint:errorlint // JSONError is the stream's concrete error envelope.
		if jsonErr, ok := err.(*jsonmessage.JSONError); ok {
			return fmt.Errorf("engine reported: %s", jsonErr.Message)
		}

		return fmt.Errorf("read engine output: %w", err)
	}

	return nil
}

// encodeRegistryAuth builds the X-Registry-Auth header payload from environment
// credentials. Returns an empty string when no credentials are configured.
func encodeRegistryAuth(registryHost string) (string, error) {
	username := os.Getenv(UsernameEnvVar)
	password := os.Getenv(PasswordEnvVar)

	if username == "" && password == "" {
		return "", nil
	}

	payload, err := json.Marshal(registry.AuthConfig{
		Username:      username,
		Password:      password,
		ServerAddress: registryHost,
	})
	if err != nil {
		return "", fmt.Errorf("encode registry auth: %w", err)
	}

	return base64.URLEncoding.EncodeToString(payload), nil
}
