package docker

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/pkg/archive"
)

// OutputCallback is invoked with incremental build/push progress messages.
type OutputCallback func(string)

// BuildImage creates an image from the Dockerfile in dir, applying every tag
// in tags.
func (c *Client) BuildImage(ctx context.Context, dir string, tags []string, buildArgs map[string]*string, onOutput OutputCallback) error {
	if c.inner == nil {
		return fmt.Errorf("docker client not initialized")
	}
	if dir == "" {
		return fmt.Errorf("build directory cannot be empty")
	}
	if len(tags) == 0 {
		return fmt.Errorf("at least one image tag is required")
	}

	buildCtx, err := archive.TarWithOptions(dir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("create build context: %w", err)
	}
	defer buildCtx.Close()

	opts := types.ImageBuildOptions{
		Tags:        tags,
		Remove:      true,
		ForceRemove: true,
		BuildArgs:   buildArgs,
	}
	resp, err := c.inner.ImageBuild(ctx, buildCtx, opts)
	if err != nil {
		return fmt.Errorf("docker image build: %w", err)
	}
	defer resp.Body.Close()

	if err := drainStream(resp.Body, onOutput); err != nil {
		return fmt.Errorf("docker image build: %w", err)
	}
	return nil
}

// TagImage applies an additional tag to an existing image.
func (c *Client) TagImage(ctx context.Context, source, target string) error {
	if err := c.inner.ImageTag(ctx, source, target); err != nil {
		return fmt.Errorf("docker image tag %s -> %s: %w", source, target, err)
	}
	return nil
}

// PushImage pushes a tagged image to its registry. Credentials are taken
// from the environment via RegistryAuthFromEnv; an empty auth pushes
// anonymously.
func (c *Client) PushImage(ctx context.Context, ref, auth string, onOutput OutputCallback) error {
	if ref == "" {
		return fmt.Errorf("image reference cannot be empty")
	}
	if auth == "" {
		// The Engine API requires a non-empty header even for anonymous pushes.
		auth = base64.StdEncoding.EncodeToString([]byte("{}"))
	}

	body, err := c.inner.ImagePush(ctx, ref, image.PushOptions{RegistryAuth: auth})
	if err != nil {
		return fmt.Errorf("docker image push %s: %w", ref, err)
	}
	defer body.Close()

	if err := drainStream(body, onOutput); err != nil {
		return fmt.Errorf("docker image push %s: %w", ref, err)
	}
	return nil
}

// RegistryAuthFromEnv builds the X-Registry-Auth header value from the
// DOCKER_USERNAME and DOCKER_PASSWORD environment variables. It returns the
// empty string when no credentials are set.
func RegistryAuthFromEnv(username, password string) (string, error) {
	if username == "" && password == "" {
		return "", nil
	}
	auth := registry.AuthConfig{Username: username, Password: password}
	data, err := json.Marshal(auth)
	if err != nil {
		return "", fmt.Errorf("encode registry auth: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// drainStream consumes a Docker Engine JSON message stream, forwarding
// progress lines and surfacing embedded errors.
func drainStream(r io.Reader, onOutput OutputCallback) error {
	decoder := json.NewDecoder(r)
	for {
		var msg streamMessage
		if err := decoder.Decode(&msg); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("decode stream: %w", err)
		}
		if errMsg := msg.errorMessage(); errMsg != "" {
			return fmt.Errorf("%s", errMsg)
		}
		if line := msg.render(); line != "" && onOutput != nil {
			onOutput(line)
		}
	}
}
