package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMinimizesAndPrintsBothDFAs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.dfa")
	require.NoError(t, os.WriteFile(path, []byte("3 2\na b\n1 2\n1 1\n2 2\n1\n"), 0o644))

	stdout := captureStdout(t, func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		code := run(context.Background(), logger, []string{path}, config{workers: 1})
		assert.Equal(t, 0, code)
	})

	assert.Contains(t, stdout, "------- Original  DFA -------")
	assert.Contains(t, stdout, "------- Minimized DFA -------")
}

func TestRunReportsFailureForMissingFile(t *testing.T) {
	stdout := captureStdout(t, func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		code := run(context.Background(), logger, []string{"/nonexistent/path.dfa"}, config{workers: 1})
		assert.Equal(t, 1, code)
	})
	_ = stdout
}

func TestRunProcessesMultipleFilesConcurrently(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 4; i++ {
		p := filepath.Join(dir, "d.dfa")
		p = filepath.Join(dir, filepath.Base(p)+string(rune('0'+i)))
		require.NoError(t, os.WriteFile(p, []byte("2 1\na\n1\n1\n0\n"), 0o644))
		paths = append(paths, p)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	captureStdout(t, func() {
		code := run(context.Background(), logger, paths, config{workers: 4})
		assert.Equal(t, 0, code)
	})
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}
