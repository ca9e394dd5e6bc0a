// Package vcs wraps the version-control operations the sanitizer needs:
// listing tracked files and staging the working tree.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Client is the version-control capability injected into the sanitizer so
// tests can substitute a fake.
type Client interface {
	ListTrackedFiles(ctx context.Context) ([]string, error)
	StageAll(ctx context.Context) error
}

// Git runs the git executable in a working directory.
type Git struct {
	Dir string
}

func NewGit(dir string) *Git {
	return &Git{Dir: dir}
}

// ListTrackedFiles returns the paths in the git index, one per line as
// reported by ls-files, in git's order.
func (g *Git) ListTrackedFiles(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "ls-files")
	if err != nil {
		return nil, err
	}
	return splitPaths(out), nil
}

// StageAll marks all working-tree modifications for the next commit.
func (g *Git) StageAll(ctx context.Context) error {
	_, err := g.run(ctx, "add", "-A")
	return err
}

// run executes git and returns its stdout. Stderr is kept out of the
// returned output so warnings never leak into parsed results; it only
// feeds the error message.
func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = os.Environ()
	if strings.TrimSpace(g.Dir) != "" {
		cmd.Dir = g.Dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("git %s: %w\n%s",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// splitPaths splits ls-files output into one path per line. Only line
// endings are stripped: filenames may legitimately carry leading or
// trailing spaces.
func splitPaths(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}
