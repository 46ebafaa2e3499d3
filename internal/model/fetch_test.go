package model

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUsesExistingArtifact(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, ArtifactFileName)
	require.NoError(t, os.WriteFile(existing, []byte(`{}`), 0o644))

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	artifact, metadata, err := Ensure(context.Background(), FetchConfig{
		SearchPaths: []string{existing},
		DestDir:     dir,
		ArtifactURL: srv.URL + "/" + ArtifactFileName,
	})
	require.NoError(t, err)
	assert.Equal(t, existing, artifact)
	assert.Equal(t, filepath.Join(dir, MetadataFileName), metadata)
	assert.Zero(t, hits, "a local artifact must short-circuit the download")
}

func TestEnsureNoSourceFails(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Ensure(context.Background(), FetchConfig{
		SearchPaths: []string{filepath.Join(dir, ArtifactFileName)},
		DestDir:     dir,
	})
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestEnsureDownloadsArtifactAndMetadata(t *testing.T) {
	artifactBody := []byte(`{"learner": {}}`)
	metadataBody := []byte(`{"version": "1.0.0"}`)

	mux := http.NewServeMux()
	mux.HandleFunc("/models/"+ArtifactFileName, func(w http.ResponseWriter, r *http.Request) {
		w.Write(artifactBody)
	})
	mux.HandleFunc("/models/"+MetadataFileName, func(w http.ResponseWriter, r *http.Request) {
		w.Write(metadataBody)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	artifact, metadata, err := Ensure(context.Background(), FetchConfig{
		SearchPaths: []string{filepath.Join(dir, ArtifactFileName)},
		DestDir:     dir,
		// Metadata URL left empty on purpose: it must be inferred by
		// substituting the artifact filename.
		ArtifactURL: srv.URL + "/models/" + ArtifactFileName,
	})
	require.NoError(t, err)

	got, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(artifactBody, got))

	got, err = os.ReadFile(metadata)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(metadataBody, got))

	_, err = os.Stat(artifact + ".part")
	assert.True(t, os.IsNotExist(err), "temporary file must not survive a successful download")
}

func TestEnsureMetadataFailureNonFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/"+ArtifactFileName, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	// No metadata route: the inferred URL 404s.
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	artifact, metadata, err := Ensure(context.Background(), FetchConfig{
		SearchPaths: []string{filepath.Join(dir, ArtifactFileName)},
		DestDir:     dir,
		ArtifactURL: srv.URL + "/" + ArtifactFileName,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, artifact)
	assert.Empty(t, metadata, "metadata failure degrades, it does not abort startup")
}

func TestEnsureAbortsOversizedDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 4096))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, ArtifactFileName)

	_, _, err := Ensure(context.Background(), FetchConfig{
		SearchPaths:      []string{dest},
		DestDir:          dir,
		ArtifactURL:      srv.URL + "/" + ArtifactFileName,
		MaxArtifactBytes: 1024,
	})
	require.ErrorIs(t, err, ErrDownloadTooLarge)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "destination must stay absent after an aborted transfer")
	_, statErr = os.Stat(dest + ".part")
	assert.True(t, os.IsNotExist(statErr), "partial file must be deleted on abort")
}

func TestEnsureBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, _, err := Ensure(context.Background(), FetchConfig{
		SearchPaths: []string{filepath.Join(dir, ArtifactFileName)},
		DestDir:     dir,
		ArtifactURL: srv.URL + "/" + ArtifactFileName,
	})
	assert.Error(t, err)
}

func TestDefaultSearchPaths(t *testing.T) {
	paths := DefaultSearchPaths("models")
	require.NotEmpty(t, paths)
	assert.Equal(t, filepath.Join("models", ArtifactFileName), paths[0])
}
