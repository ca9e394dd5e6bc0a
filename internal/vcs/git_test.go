package vcs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGit puts a shell script named git on PATH so the real executable is
// never invoked.
func stubGit(t *testing.T, script string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "git")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestListTrackedFiles(t *testing.T) {
	t.Run("StderrWarningsAreNotPaths", func(t *testing.T) {
		stubGit(t, `
echo "warning: something odd" >&2
echo "real/file.txt"
echo "other/file.go"
`)

		g := NewGit("")
		paths, err := g.ListTrackedFiles(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"real/file.txt", "other/file.go"}, paths)
	})

	t.Run("FailureReportsStderr", func(t *testing.T) {
		stubGit(t, `
echo "fatal: not a git repository" >&2
exit 128
`)

		g := NewGit("")
		_, err := g.ListTrackedFiles(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git ls-files")
		assert.Contains(t, err.Error(), "fatal: not a git repository")
	})
}

func TestStageAll(t *testing.T) {
	t.Run("ExitCodeChecked", func(t *testing.T) {
		stubGit(t, `
echo "error: index locked" >&2
exit 1
`)

		g := NewGit("")
		err := g.StageAll(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git add -A")
		assert.Contains(t, err.Error(), "error: index locked")
	})

	t.Run("Success", func(t *testing.T) {
		stubGit(t, "exit 0")

		g := NewGit("")
		assert.NoError(t, g.StageAll(context.Background()))
	})
}

func TestSplitPaths(t *testing.T) {
	t.Run("OnePathPerLine", func(t *testing.T) {
		out := "cmd/scrub/main.go\ninternal/vcs/git.go\nREADME.md\n"
		assert.Equal(t, []string{
			"cmd/scrub/main.go",
			"internal/vcs/git.go",
			"README.md",
		}, splitPaths(out))
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		out := "z.txt\na.txt\nm.txt\n"
		assert.Equal(t, []string{"z.txt", "a.txt", "m.txt"}, splitPaths(out))
	})

	t.Run("SkipsEmptyLines", func(t *testing.T) {
		out := "a.txt\n\nb.txt\n"
		assert.Equal(t, []string{"a.txt", "b.txt"}, splitPaths(out))
	})

	t.Run("TrimsCarriageReturns", func(t *testing.T) {
		out := "a.txt\r\nb.txt\r\n"
		assert.Equal(t, []string{"a.txt", "b.txt"}, splitPaths(out))
	})

	t.Run("KeepsSpacesInFilenames", func(t *testing.T) {
		out := " leading.txt\ntrailing.txt \n"
		assert.Equal(t, []string{" leading.txt", "trailing.txt "}, splitPaths(out))
	})

	t.Run("EmptyOutput", func(t *testing.T) {
		assert.Empty(t, splitPaths(""))
	})
}
