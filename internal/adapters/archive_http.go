package adapters

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"debdl/internal/ports"
	"debdl/internal/shared"
	"debdl/internal/types"
)

const defaultArchiveWorkers = 4

// ArchiveHTTPAdapter downloads .deb archives from the mirror with a
// bounded worker pool. Per-package problems (no record, no Filename,
// download failure) are logged and skipped so one broken package does not
// abort the rest of the batch.
type ArchiveHTTPAdapter struct {
	Config  types.MirrorConfig
	Workers int
	httpCfg httpRetryConfig
}

func NewArchiveHTTPAdapter(cfg types.MirrorConfig, workers int, timeoutSec int, retries int, retryDelayMs int) ArchiveHTTPAdapter {
	if workers <= 0 {
		workers = defaultArchiveWorkers
	}
	return ArchiveHTTPAdapter{
		Config:  cfg.Normalized(),
		Workers: workers,
		httpCfg: normalizeHTTPConfig(timeoutSec, retries, retryDelayMs),
	}
}

func (a ArchiveHTTPAdapter) FetchArchives(ctx context.Context, index types.PackageIndex, names []string, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create archive directory").
			WithCause(err)
	}

	workerCount := a.Workers
	if len(names) < workerCount {
		workerCount = len(names)
	}
	if workerCount == 0 {
		return nil, nil
	}

	tasks := make(chan string)
	results := make(chan string, len(names))
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range tasks {
				if ctx.Err() != nil {
					continue
				}
				path, ok := a.fetchArchive(ctx, index, name, destDir)
				if ok {
					results <- path
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	for _, name := range names {
		tasks <- name
	}
	close(tasks)

	var paths []string
	for path := range results {
		paths = append(paths, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("archive download canceled").
			WithCause(err)
	}
	sort.Strings(paths)
	return paths, nil
}

// fetchArchive downloads one package archive. The bool result reports
// whether a file is present at the returned path, whether freshly
// downloaded or already there from an earlier run.
func (a ArchiveHTTPAdapter) fetchArchive(ctx context.Context, index types.PackageIndex, name string, destDir string) (string, bool) {
	record, ok := index[name]
	if !ok {
		log.Ctx(ctx).Warn().Str("package", name).Msg("package not found in index, skipping download")
		return "", false
	}
	filename := record.Filename()
	if filename == "" {
		log.Ctx(ctx).Warn().Str("package", name).Msg("record has no Filename field, skipping download")
		return "", false
	}
	destPath := filepath.Join(destDir, filepath.Base(filename))
	if _, err := os.Stat(destPath); err == nil {
		log.Ctx(ctx).Debug().Str("path", destPath).Msg("archive already present, skipping download")
		return destPath, true
	}

	url := a.Config.ArchiveURL(filename)
	log.Ctx(ctx).Info().Str("package", name).Str("url", url).Msg("downloading archive")
	if err := a.downloadFile(ctx, url, destPath); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("package", name).Msg("archive download failed, skipping")
		return "", false
	}
	return destPath, true
}

func (a ArchiveHTTPAdapter) downloadFile(ctx context.Context, url string, destPath string) error {
	resp, err := doRequest(ctx, url, a.httpCfg)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("archive fetch failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	file, err := os.Create(destPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create archive file").
			WithCause(err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		_ = os.Remove(destPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write archive file").
			WithCause(err)
	}
	return file.Close()
}

var _ ports.ArchiveFetcherPort = ArchiveHTTPAdapter{}
