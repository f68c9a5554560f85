package fluidtype

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/yacobolo/fluidtype/internal/log"
	"golang.org/x/sync/errgroup"
)

// FilesConfig configures processing of stylesheets on disk
type FilesConfig struct {
	Process     ProcessConfig
	Include     []string // Stylesheet globs (e.g., "web/styles/**/*.css")
	OutDir      string   // Output directory; empty rewrites files in place
	BaseDir     string   // Paths under OutDir are relative to BaseDir (default ".")
	DryRun      bool     // Process without writing
	Concurrency int      // 0 = GOMAXPROCS
}

// FileResult is the outcome for one stylesheet
type FileResult struct {
	Path       string // Input path
	Output     string // Written path, empty when nothing was written
	Changed    bool
	Replaced   int
	Directives int
}

// FilesResult aggregates a ProcessFiles run
type FilesResult struct {
	Files  []FileResult
	Issues []Issue
	Stats  ScanStats
}

// Written returns the number of files written
func (r *FilesResult) Written() int {
	n := 0
	for _, f := range r.Files {
		if f.Output != "" {
			n++
		}
	}
	return n
}

// ProcessFiles generates the scale once and applies it to every stylesheet
// matching the include globs
func ProcessFiles(ctx context.Context, cfg FilesConfig) (*FilesResult, error) {
	logger := log.WithComponent("process")

	scale, err := Generate(cfg.Process.Config)
	if err != nil {
		return nil, err
	}

	files, stats, err := expandGlobPatterns(cfg.Include)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Int("discovered", stats.FilesDiscovered).
		Int("skipped", stats.FilesSkipped).
		Int("entries", scale.Len()).
		Msg("expanded include patterns")

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))
	issues := make([][]Issue, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// #nosec G304 - path comes from configured globs
			src, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			res, err := ProcessWithScale(src, file, scale, cfg.Process)
			if err != nil {
				return err
			}

			results[i] = FileResult{
				Path:       file,
				Changed:    res.Changed,
				Replaced:   res.Replaced,
				Directives: res.Directives,
			}
			issues[i] = res.Issues

			target, write := outputPath(file, cfg)
			if !write || (target == file && !res.Changed) {
				return nil
			}
			if err := writeFileAtomic(target, []byte(res.CSS)); err != nil {
				return err
			}
			results[i].Output = target

			logger.Info().
				Str("file", file).
				Str("output", target).
				Int("replaced", res.Replaced).
				Int("directives", res.Directives).
				Msg("wrote stylesheet")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &FilesResult{Files: results, Stats: stats}
	for _, fileIssues := range issues {
		result.Issues = append(result.Issues, fileIssues...)
	}
	for _, issue := range result.Issues {
		logger.Warn().
			Str("file", issue.Pos.Filename).
			Int("line", issue.Pos.Line).
			Msg(issue.Text)
	}
	return result, nil
}

// outputPath maps an input file to where its output is written
func outputPath(file string, cfg FilesConfig) (string, bool) {
	if cfg.DryRun {
		return "", false
	}
	if cfg.OutDir == "" {
		return file, true
	}

	base := cfg.BaseDir
	if base == "" {
		base = "."
	}
	rel, err := filepath.Rel(base, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(file)
	}
	return filepath.Join(cfg.OutDir, rel), true
}

// writeFileAtomic replaces path with data so readers never see a partial file
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644), renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
