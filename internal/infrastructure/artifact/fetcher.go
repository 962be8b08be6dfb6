// Package artifact fetches model artifacts that are missing from local disk.
package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// FetcherConfig holds download settings.
type FetcherConfig struct {
	// Timeout bounds a single download attempt, body included.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// InitialInterval is the first backoff delay. Defaults to 500ms.
	InitialInterval time.Duration
}

// Source describes one artifact: where it lives and where to get it.
type Source struct {
	Name   string
	Path   string
	URL    string
	SHA256 string
}

// Fetcher makes sure artifacts exist locally, downloading them over plain
// HTTP GET when absent.
type Fetcher struct {
	client          *http.Client
	logger          *slog.Logger
	maxRetries      int
	initialInterval time.Duration
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg FetcherConfig, logger *slog.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	return &Fetcher{
		client:          &http.Client{Timeout: cfg.Timeout},
		logger:          logger,
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.InitialInterval,
	}
}

// Ensure returns src.Path once the artifact is present there. An existing
// file is used as is, after checksum verification when SHA256 is set.
// Otherwise the file is downloaded to a temporary sibling and renamed into
// place, so a partial download never appears at src.Path.
func (f *Fetcher) Ensure(ctx context.Context, src Source) (string, error) {
	if _, err := os.Stat(src.Path); err == nil {
		if src.SHA256 != "" {
			if err := verifyFile(src.Path, src.SHA256); err != nil {
				return "", fmt.Errorf("%s: %w", src.Name, err)
			}
		}
		f.logger.Debug("artifact present", "artifact", src.Name, "path", src.Path)
		return src.Path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s: %v", model.ErrArtifactUnavailable, src.Name, err)
	}

	if src.URL == "" {
		return "", fmt.Errorf("%w: %s not found at %s and no download URL configured",
			model.ErrArtifactUnavailable, src.Name, src.Path)
	}

	f.logger.Info("downloading artifact", "artifact", src.Name, "url", src.URL, "path", src.Path)
	start := time.Now()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.initialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(f.maxRetries)), ctx)

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		return f.download(ctx, src)
	}, policy, func(err error, wait time.Duration) {
		f.logger.Warn("artifact download failed, retrying",
			"artifact", src.Name, "attempt", attempt, "retry_in", wait, "error", err)
	})
	if err != nil {
		if errors.Is(err, model.ErrArtifactCorrupt) {
			return "", fmt.Errorf("%s: %w", src.Name, err)
		}
		return "", fmt.Errorf("%w: %s after %d attempt(s): %v", model.ErrArtifactUnavailable, src.Name, attempt, err)
	}

	f.logger.Info("artifact downloaded",
		"artifact", src.Name, "attempts", attempt, "duration_ms", time.Since(start).Milliseconds())
	return src.Path, nil
}

func (f *Fetcher) download(ctx context.Context, src Source) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if retryableStatus(resp.StatusCode) {
			return err
		}
		return backoff.Permanent(err)
	}

	if dir := filepath.Dir(src.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create directory: %w", err))
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(src.Path), filepath.Base(src.Path)+".*.part")
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create temp file: %w", err))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to read body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush temp file: %w", err)
	}

	if src.SHA256 != "" {
		got := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(got, src.SHA256) {
			return backoff.Permanent(fmt.Errorf("%w: checksum mismatch: got %s, want %s",
				model.ErrArtifactCorrupt, got, src.SHA256))
		}
	}

	if err := os.Rename(tmpName, src.Path); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to move artifact into place: %w", err))
	}
	return nil
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

func verifyFile(path, want string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrArtifactUnavailable, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return fmt.Errorf("%w: %v", model.ErrArtifactUnavailable, err)
	}
	if got := hex.EncodeToString(hasher.Sum(nil)); !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: checksum mismatch: got %s, want %s", model.ErrArtifactCorrupt, got, want)
	}
	return nil
}
