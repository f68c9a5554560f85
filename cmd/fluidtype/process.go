package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/fluidtype"
	"github.com/yacobolo/fluidtype/internal/log"
	"github.com/yacobolo/fluidtype/internal/watch"
)

var processCmd = &cobra.Command{
	Use:   "process [globs...]",
	Short: "Expand the scale into stylesheets",
	Long: `Replace generator directive comments with the scale's custom properties,
or with --replace-inline substitute references to scale names in declaration
values. Files are rewritten in place unless --out-dir is set.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runProcess,
}

func init() {
	f := processCmd.Flags()
	addScaleFlags(f, fluidtype.DefaultConfig().Prefix)
	f.StringSlice("include", nil, "Glob patterns for stylesheets (default **/*.css)")
	f.String("out-dir", "", "Write results here instead of rewriting in place")
	f.String("base-dir", ".", "Directory output paths are relative to")
	f.Bool("replace-inline", false, "Substitute references in declarations instead of expanding directives")
	f.String("directive", fluidtype.DefaultGeneratorDirective, "Comment text replaced by the generated variables")
	f.Bool("dry-run", false, "Report what would change without writing")
	f.Int("concurrency", 0, "Files processed in parallel (0 = GOMAXPROCS)")
	f.BoolP("watch", "w", false, "Re-process when stylesheets change")
}

func runProcess(_ *cobra.Command, args []string) error {
	config, err := buildFilesConfig(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := processOnce(ctx, config); err != nil {
		return err
	}

	if !getBoolWithFallback("watch", "process.watch", false) {
		return nil
	}

	// Outputs written into a separate directory must not retrigger the loop
	outDir := ""
	if config.OutDir != "" {
		if abs, err := filepath.Abs(config.OutDir); err == nil {
			outDir = abs
		}
	}
	return watch.Run(ctx, watch.Config{
		Paths: watchDirs(config.Include),
		Filter: func(path string) bool {
			if !strings.HasSuffix(path, ".css") {
				return false
			}
			if outDir == "" {
				return true
			}
			abs, err := filepath.Abs(path)
			return err != nil || !strings.HasPrefix(abs, outDir+string(filepath.Separator))
		},
	}, func(ctx context.Context, _ []string) error {
		return processOnce(ctx, config)
	})
}

func processOnce(ctx context.Context, config fluidtype.FilesConfig) error {
	result, err := fluidtype.ProcessFiles(ctx, config)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		fmt.Printf("Processed %d stylesheets, wrote %d\n", len(result.Files), result.Written())
		for _, file := range result.Files {
			if file.Output == "" {
				continue
			}
			fmt.Printf("  %s -> %s (%d replaced, %d directives)\n",
				file.Path, file.Output, file.Replaced, file.Directives)
		}
		for _, issue := range result.Issues {
			fmt.Printf("  Warning: %s:%d:%d: %s\n",
				issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column, issue.Text)
		}
	}
	return nil
}

// watchDirs returns the existing directories holding files matched by globs
func watchDirs(globs []string) []string {
	logger := log.WithComponent("watch")
	seen := make(map[string]bool)
	for _, glob := range globs {
		// Static part of the pattern, up to the first meta character
		static := glob
		if i := strings.IndexAny(glob, "*?[{"); i >= 0 {
			static = glob[:i]
		}
		dir := filepath.Dir(static + "x")
		if err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != dir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
					return filepath.SkipDir
				}
				seen[path] = true
			}
			return nil
		}); err != nil {
			logger.Debug().Err(err).Str("dir", dir).Msg("walk failed")
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
