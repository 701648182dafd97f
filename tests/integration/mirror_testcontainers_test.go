//go:build integration

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"debdl/internal/app"
	"debdl/internal/types"
)

func TestFetchAgainstContainerMirror(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startMirrorContainer(ctx, t)
	t.Cleanup(cleanup)

	service := app.NewService(types.MirrorConfig{
		Mirror:       endpoint,
		Distribution: "stable",
		Component:    "main",
		Architecture: "amd64",
	}, app.ServiceOptions{
		CacheDir:         t.TempDir(),
		DownloadWorkers:  2,
		HTTPTimeoutSec:   30,
		HTTPRetries:      3,
		HTTPRetryDelayMs: 200,
	})

	outputDir := t.TempDir()
	result, err := service.Fetch(ctx, app.FetchRequest{
		Targets:   []string{"libexample"},
		OutputDir: outputDir,
	})
	require.NoError(t, err)
	require.Len(t, result.Plans, 1)
	assert.Equal(t, []string{"libbase", "libexample"}, result.Plans[0].InstallOrder)

	targetDir := filepath.Join(outputDir, "libexample")
	require.FileExists(t, filepath.Join(targetDir, "plan.yaml"))
	require.FileExists(t, filepath.Join(targetDir, "install.sh"))
	require.Len(t, result.Archives, 2)
	for _, path := range result.Archives {
		require.FileExists(t, path)
	}
}

func startMirrorContainer(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", mirrorServerScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

const mirrorServerScript = `
import gzip
import os

root = "/srv/mirror"
index_dir = os.path.join(root, "dists", "stable", "main", "binary-amd64")
os.makedirs(index_dir, exist_ok=True)

index = (
    "Package: libexample\n"
    "Version: 1.2.3\n"
    "Depends: libbase\n"
    "Filename: pool/main/libe/libexample/libexample_1.2.3_amd64.deb\n"
    "\n"
    "Package: libbase\n"
    "Version: 2.0.0\n"
    "Filename: pool/main/libb/libbase/libbase_2.0.0_amd64.deb\n"
)
with gzip.open(os.path.join(index_dir, "Packages.gz"), "wt") as f:
    f.write(index)

archives = {
    "pool/main/libe/libexample/libexample_1.2.3_amd64.deb": b"libexample archive",
    "pool/main/libb/libbase/libbase_2.0.0_amd64.deb": b"libbase archive",
}
for path, data in archives.items():
    full = os.path.join(root, path)
    os.makedirs(os.path.dirname(full), exist_ok=True)
    with open(full, "wb") as f:
        f.write(data)

os.execvp("python", ["python", "-m", "http.server", "8080", "--directory", root])
`
