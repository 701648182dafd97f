// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// MirrorFixture describes a fake Debian mirror: a Packages index plus the
// archive bytes served under each record's Filename path.
type MirrorFixture struct {
	Distribution string
	Component    string
	Architecture string
	IndexText    string
	Archives     map[string][]byte
}

// StartMirror serves the fixture over HTTP the way a real mirror lays it
// out: the gzipped index under dists/ and the archives under their
// Filename paths. The server is closed when the test finishes.
func StartMirror(t *testing.T, fixture MirrorFixture) *httptest.Server {
	t.Helper()
	indexPath := fmt.Sprintf("/dists/%s/%s/binary-%s/Packages.gz",
		fixture.Distribution, fixture.Component, fixture.Architecture)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == indexPath {
			gz := gzip.NewWriter(w)
			_, _ = gz.Write([]byte(fixture.IndexText))
			_ = gz.Close()
			return
		}
		if data, ok := fixture.Archives[strings.TrimPrefix(r.URL.Path, "/")]; ok {
			_, _ = w.Write(data)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}
