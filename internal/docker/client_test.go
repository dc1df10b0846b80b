package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEngineClient starts an httptest server standing in for the Docker
// Engine API and returns a client pointed at it. The version negotiation
// ping is answered here so individual tests only handle their own endpoints.
func newEngineClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/_ping") {
			w.Header().Set("API-Version", "1.47")
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := New(srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestBuildImage_AppliesAllTags(t *testing.T) {
	var (
		mu   sync.Mutex
		tags []string
	)
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/build") {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		tags = r.URL.Query()["t"]
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"stream":"Successfully built 0123456789ab\n"}`)
	})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM alpine:3.21\n"), 0o644))

	var lines []string
	err := client.BuildImage(context.Background(), dir,
		[]string{ImageRef("2.1"), ImageRef(LatestTag)}, nil,
		func(line string) { lines = append(lines, line) })
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{
		"diogosantosua/onboarding-tools:2.1",
		"diogosantosua/onboarding-tools:latest",
	}, tags)
	assert.Contains(t, lines, "Successfully built 0123456789ab")
}

func TestPushImage_SurfacesStreamError(t *testing.T) {
	var (
		mu   sync.Mutex
		auth string
	)
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/push") {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		auth = r.Header.Get("X-Registry-Auth")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"Preparing","id":"layer1"}`)
		fmt.Fprintln(w, `{"errorDetail":{"message":"denied: requested access to the resource is denied"},"error":"denied: requested access to the resource is denied"}`)
	})

	err := client.PushImage(context.Background(), ImageRef(LatestTag), "", nil)
	assert.ErrorContains(t, err, "denied: requested access to the resource is denied")

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, auth, "anonymous pushes still carry an auth header")
}

func TestRunContainer_PublishesConfiguredPort(t *testing.T) {
	const containerID = "4a1c3d5e7f904a1c3d5e7f90"
	var (
		mu      sync.Mutex
		removed bool
		created struct {
			Env        []string `json:"Env"`
			HostConfig struct {
				PortBindings nat.PortMap `json:"PortBindings"`
			} `json:"HostConfig"`
		}
	)
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			mu.Lock()
			removed = true
			mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, `{"message":"No such container: onboarding-tools"}`)
		case strings.HasSuffix(r.URL.Path, "/containers/create"):
			mu.Lock()
			err := json.NewDecoder(r.Body).Decode(&created)
			mu.Unlock()
			assert.NoError(t, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprintf(w, `{"Id":%q,"Warnings":[]}`, containerID)
		case strings.HasSuffix(r.URL.Path, "/start"):
			w.WriteHeader(http.StatusNoContent)
		case strings.HasSuffix(r.URL.Path, "/json"):
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"Id":%q,"State":{"Running":true},"NetworkSettings":{"Ports":{"8004/tcp":[{"HostIp":"0.0.0.0","HostPort":"8004"}]}}}`, containerID)
		default:
			http.NotFound(w, r)
		}
	})

	ports := nat.PortMap{"8004/tcp": []nat.PortBinding{{HostPort: "8004"}}}
	info, err := client.RunContainer(context.Background(), "onboarding-tools",
		ImageRef(LatestTag), []string{"PORT=8004", "LOG_LEVEL=DEBUG"}, ports)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, removed, "an existing container with the same name is removed first")
	assert.Equal(t, containerID, info.ID)
	assert.Contains(t, created.Env, "PORT=8004")
	require.Contains(t, created.HostConfig.PortBindings, nat.Port("8004/tcp"))
	assert.Equal(t, "8004", created.HostConfig.PortBindings[nat.Port("8004/tcp")][0].HostPort)
	require.Contains(t, info.PortBinding, nat.Port("8004/tcp"))
	assert.Equal(t, "8004", info.PortBinding[nat.Port("8004/tcp")][0].HostPort)
}
