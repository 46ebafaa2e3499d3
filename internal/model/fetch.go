package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/phishblock-service/pkg/metrics"
)

const (
	// ArtifactFileName is the well-known name of the trained model file;
	// MetadataFileName is its sibling metadata document.
	ArtifactFileName = "phishing_xgb.json"
	MetadataFileName = "model_metadata.json"

	DefaultMaxArtifactBytes int64 = 250 << 20
	MaxMetadataBytes        int64 = 1 << 20
)

var (
	ErrDownloadTooLarge = errors.New("download exceeds maximum allowed size")
	ErrArtifactNotFound = errors.New("model artifact not found in any expected location")
)

// FetchConfig controls model acquisition at startup.
type FetchConfig struct {
	// SearchPaths are probed in order; the first existing artifact wins
	// and no download is attempted.
	SearchPaths []string
	// DestDir receives downloaded files.
	DestDir string
	// ArtifactURL is the remote model source; empty disables downloads.
	ArtifactURL string
	// MetadataURL overrides the inferred metadata location.
	MetadataURL string
	// MaxArtifactBytes caps the artifact transfer; zero means the default.
	MaxArtifactBytes int64

	Client *http.Client
}

// DefaultSearchPaths returns the priority-ordered local locations where a
// previously acquired artifact may already live.
func DefaultSearchPaths(destDir string) []string {
	return []string{
		filepath.Join(destDir, ArtifactFileName),
		filepath.Join("models", ArtifactFileName),
		filepath.Join("/app/models", ArtifactFileName),
		ArtifactFileName,
	}
}

// Ensure runs once before the service accepts traffic. It locates the
// model artifact on disk or downloads it under a strict byte ceiling,
// publishing atomically so readers never observe partial content.
// Metadata failures are non-fatal: metadataPath comes back empty and the
// caller degrades to the default threshold. A missing artifact is fatal.
func Ensure(ctx context.Context, cfg FetchConfig) (artifactPath, metadataPath string, err error) {
	for _, p := range cfg.SearchPaths {
		if fileExists(p) {
			slog.Info("Found existing model artifact", "path", p)
			return p, filepath.Join(filepath.Dir(p), MetadataFileName), nil
		}
	}

	if cfg.ArtifactURL == "" {
		return "", "", ErrArtifactNotFound
	}

	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating model directory: %w", err)
	}

	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	maxBytes := cfg.MaxArtifactBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxArtifactBytes
	}

	dest := filepath.Join(cfg.DestDir, ArtifactFileName)
	slog.Info("Downloading model artifact", "url", cfg.ArtifactURL, "dest", dest, "max_bytes", maxBytes)
	if err := downloadFile(ctx, client, cfg.ArtifactURL, dest, maxBytes); err != nil {
		return "", "", fmt.Errorf("downloading model artifact: %w", err)
	}

	metaURL := cfg.MetadataURL
	if metaURL == "" {
		// No explicit metadata source; try the conventional sibling name
		// next to the artifact.
		metaURL = strings.Replace(cfg.ArtifactURL, ArtifactFileName, MetadataFileName, 1)
	}
	metaDest := filepath.Join(cfg.DestDir, MetadataFileName)
	if err := downloadFile(ctx, client, metaURL, metaDest, MaxMetadataBytes); err != nil {
		slog.Warn("Model metadata unavailable, falling back to default threshold", "url", metaURL, "error", err)
		return dest, "", nil
	}

	return dest, metaDest, nil
}

// downloadFile streams url to dest with a cumulative byte ceiling. The
// transfer lands in a ".part" temporary first and is renamed over dest
// only once fully written. Exceeding the ceiling aborts the transfer and
// removes the partial file.
func downloadFile(ctx context.Context, client *http.Client, rawURL, dest string, maxBytes int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s fetching %s", resp.Status, rawURL)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	var total int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			total += int64(n)
			if total > maxBytes {
				f.Close()
				os.Remove(tmp)
				return fmt.Errorf("%w: ceiling %d bytes", ErrDownloadTooLarge, maxBytes)
			}
			if _, werr := f.Write(buf[:n]); werr != nil {
				f.Close()
				os.Remove(tmp)
				return werr
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			f.Close()
			os.Remove(tmp)
			return readErr
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	metrics.ModelDownloadBytes.Add(float64(total))
	slog.Info("Download complete", "dest", dest, "bytes", total)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
