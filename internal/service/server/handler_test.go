package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"snapp-packager/internal/resources"
	"snapp-packager/internal/service/packager"
)

const testMaxProjectBytes = 1 << 20

// newTestHandler wires a handler over a minimal in-memory resource store
// covering the lin64 target.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	fsys := fstest.MapFS{
		"variants/reduced/gui.js":     {Data: []byte("function start() {}\n")},
		"variants/reduced/snapp.html": {Data: []byte("<html></html>")},

		"templates/launcher.sh.tpl":   {Data: []byte("#!/bin/sh\nexec {{FILENAME}}\n")},
		"templates/snapp.desktop.tpl": {Data: []byte("[Desktop Entry]\nName={{FILENAME}}\n")},

		"stubs/lin64": {Data: []byte{0x7f, 'E', 'L', 'F'}},

		"icons/snapp.png": {Data: []byte("png")},

		"nwjs/lin64/lib/libnw.so": {Data: []byte("lib")},
	}

	orchestrator := packager.NewOrchestrator(resources.NewStore(fsys))

	return NewHandler(orchestrator, time.Minute, testMaxProjectBytes).Routes()
}

// decodeError reads the structured failure body.
func decodeError(t *testing.T, body io.Reader) errorResponse {
	t.Helper()

	var resp errorResponse

	require.NoError(t, json.NewDecoder(body).Decode(&resp))

	return resp
}

func TestHandlePackageSuccess(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	req := httptest.NewRequest(
		http.MethodPost,
		"/package?filename=MazeGame&os=lin64&resolution=800x600",
		strings.NewReader(`<project name="Maze"/>`),
	)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="MazeGame.zip"`, rec.Header().Get("Content-Disposition"))
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	raw := rec.Body.Bytes()

	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	names := make(map[string]struct{}, len(reader.File))
	for _, entry := range reader.File {
		names[entry.Name] = struct{}{}
	}

	require.Contains(t, names, "Maze.snapp/launcher.sh")
	require.Contains(t, names, "Maze.snapp/MazeGame")
	require.Contains(t, names, "MazeGame.desktop")
}

func TestHandlePackageInvalidOS(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	req := httptest.NewRequest(
		http.MethodPost,
		"/package?filename=MazeGame&os=solaris&resolution=800x600",
		strings.NewReader(`<project name="Maze"/>`),
	)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeError(t, rec.Body)
	require.Equal(t, "invalid_operating_system", resp.Code)
	require.NotEmpty(t, resp.Message)
	require.Equal(t, rec.Header().Get("X-Request-Id"), resp.RequestID)
}

func TestHandlePackageInvalidBool(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	req := httptest.NewRequest(
		http.MethodPost,
		"/package?filename=MazeGame&os=lin64&resolution=800x600&useCompleteSnap=maybe",
		strings.NewReader(`<project name="Maze"/>`),
	)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation", decodeError(t, rec.Body).Code)
}

func TestHandlePackageMissingProjectName(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	req := httptest.NewRequest(
		http.MethodPost,
		"/package?filename=MazeGame&os=lin64&resolution=800x600",
		strings.NewReader(`<stage width="480"/>`),
	)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "missing_project_name", decodeError(t, rec.Body).Code)
}

func TestHandlePackageBodyTooLarge(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	oversized := strings.Repeat("x", testMaxProjectBytes+1)
	req := httptest.NewRequest(
		http.MethodPost,
		"/package?filename=MazeGame&os=lin64&resolution=800x600",
		strings.NewReader(oversized),
	)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation", decodeError(t, rec.Body).Code)
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
