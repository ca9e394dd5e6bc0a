// Package sanitize drives a sanitization pass over the tracked files of a
// repository: enumerate, classify, redact, rewrite, stage.
package sanitize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"scrub/internal/detect"
	scruberrors "scrub/internal/errors"
	"scrub/internal/logging"
	"scrub/internal/redact"
	"scrub/internal/vcs"
	"scrub/shared/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sanitizer applies the redaction rules to every eligible tracked file and
// stages the result. Collaborators are injected so tests can substitute
// fakes.
type Sanitizer struct {
	Root       string
	VCS        vcs.Client
	Classifier *detect.Classifier
	Rules      []redact.Rule
	Logger     *logging.Logger

	// DryRun reports what would change without writing or staging.
	DryRun bool
}

// Summary aggregates the outcome of a single pass.
type Summary struct {
	RunID           string
	Enumerated      int
	Rewritten       []string
	Unchanged       int
	SkippedBinary   int
	SkippedExcluded int
	Failures        []*scruberrors.FileError
}

// Consistent reports whether every enumerated file is accounted for.
func (s *Summary) Consistent() bool {
	return s.Enumerated == len(s.Rewritten)+s.Unchanged+
		s.SkippedBinary+s.SkippedExcluded+len(s.Failures)
}

func New(root string, client vcs.Client, classifier *detect.Classifier, rules []redact.Rule, logger *logging.Logger) *Sanitizer {
	return &Sanitizer{
		Root:       root,
		VCS:        client,
		Classifier: classifier,
		Rules:      rules,
		Logger:     logger,
	}
}

// Run performs one full pass. Listing and staging failures fail the run;
// per-file failures are logged, collected into the summary, and do not stop
// the pass.
func (s *Sanitizer) Run(ctx context.Context) (*Summary, error) {
	runID, ok := ctx.Value(logging.RunIDKey).(string)
	if !ok {
		runID = uuid.New().String()
		ctx = context.WithValue(ctx, logging.RunIDKey, runID)
	}
	summary := &Summary{RunID: runID}
	logger := s.Logger.WithRunID(ctx)

	paths, err := s.VCS.ListTrackedFiles(ctx)
	if err != nil {
		return nil, scruberrors.VCSError("listing tracked files", err)
	}
	summary.Enumerated = len(paths)

	for _, path := range paths {
		switch s.Classifier.Classify(path) {
		case detect.Binary:
			summary.SkippedBinary++
			continue
		case detect.Excluded:
			summary.SkippedExcluded++
			continue
		}

		changed, err := s.Process(path)
		if err != nil {
			fileErr := &scruberrors.FileError{Path: path, Err: err}
			summary.Failures = append(summary.Failures, fileErr)
			logger.Error("processing file",
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		if changed {
			summary.Rewritten = append(summary.Rewritten, path)
			logger.Info("rewrote file", zap.String("path", path))
		} else {
			summary.Unchanged++
		}
	}

	if s.DryRun {
		return summary, nil
	}

	if err := s.VCS.StageAll(ctx); err != nil {
		return summary, scruberrors.VCSError("staging changes", err)
	}

	return summary, nil
}

// Process reads path as UTF-8 text, applies the rules, and overwrites the
// file when the content changed. It reports whether a rewrite happened (or
// would happen, under DryRun).
func (s *Sanitizer) Process(path string) (bool, error) {
	abs := filepath.Join(s.Root, path)

	raw, err := os.ReadFile(abs)
	if err != nil {
		return false, fmt.Errorf("reading file: %w", err)
	}
	if !utf8.Valid(raw) {
		return false, fmt.Errorf("content is not valid UTF-8")
	}

	redacted := redact.Apply(s.Rules, string(raw))
	if utils.HashContent([]byte(redacted)) == utils.HashContent(raw) {
		return false, nil
	}

	if s.DryRun {
		return true, nil
	}

	if err := os.WriteFile(abs, []byte(redacted), 0644); err != nil {
		return false, fmt.Errorf("writing file: %w", err)
	}

	return true, nil
}

// SanitizeFile classifies and processes a single repository-relative path.
// Used by watch mode, where files arrive one at a time.
func (s *Sanitizer) SanitizeFile(path string) (bool, error) {
	switch s.Classifier.Classify(path) {
	case detect.Binary, detect.Excluded:
		return false, nil
	}
	return s.Process(path)
}
