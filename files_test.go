package fluidtype

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const directiveSheet = ":root {\n  /* postcss-modular-type-generate */\n}\n"

func filesConfig(dir string) FilesConfig {
	process := DefaultProcessConfig()
	process.MinStep, process.MaxStep = 0, 0
	return FilesConfig{
		Process:     process,
		Include:     []string{filepath.Join(dir, "src/**/*.css")},
		BaseDir:     filepath.Join(dir, "src"),
		Concurrency: 2,
	}
}

func TestProcessFilesOutDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/type.css", directiveSheet)
	writeFile(t, dir, "src/pages/home.css", "h1 { color: red; }\n")

	cfg := filesConfig(dir)
	cfg.OutDir = filepath.Join(dir, "dist")

	result, err := ProcessFiles(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Written())

	out, err := os.ReadFile(filepath.Join(dir, "dist", "type.css"))
	require.NoError(t, err)
	assert.Equal(t, ":root {\n  --font-size-0: "+base0+";\n}\n", string(out))

	// Unchanged files are still copied into the output tree
	out, err = os.ReadFile(filepath.Join(dir, "dist", "pages", "home.css"))
	require.NoError(t, err)
	assert.Equal(t, "h1 { color: red; }\n", string(out))

	// Sources stay untouched
	src, err := os.ReadFile(filepath.Join(dir, "src", "type.css"))
	require.NoError(t, err)
	assert.Equal(t, directiveSheet, string(src))
}

func TestProcessFilesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "src/type.css", directiveSheet)
	writeFile(t, dir, "src/plain.css", "p { margin: 0; }\n")

	result, err := ProcessFiles(context.Background(), filesConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written(), "only changed files are rewritten")

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":root {\n  --font-size-0: "+base0+";\n}\n", string(out))

	// A second pass finds nothing left to expand
	result, err = ProcessFiles(context.Background(), filesConfig(dir))
	require.NoError(t, err)
	assert.Zero(t, result.Written())
}

func TestProcessFilesDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "src/type.css", directiveSheet)

	cfg := filesConfig(dir)
	cfg.DryRun = true
	result, err := ProcessFiles(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.True(t, result.Files[0].Changed)
	assert.Equal(t, 1, result.Files[0].Directives)
	assert.Empty(t, result.Files[0].Output)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, directiveSheet, string(src))
}

func TestProcessFilesCollectsIssues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/a.css", "h1 { font-size: var(--font-size-3); }\n")

	cfg := filesConfig(dir)
	cfg.Process.ReplaceInline = true
	cfg.DryRun = true
	result, err := ProcessFiles(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, filepath.Join(dir, "src", "a.css"), result.Issues[0].Pos.Filename)
}

func TestProcessFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/type.css", directiveSheet)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessFiles(ctx, filesConfig(dir))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	cfg := FilesConfig{OutDir: "dist", BaseDir: "web"}

	got, ok := outputPath(filepath.Join("web", "css", "a.css"), cfg)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("dist", "css", "a.css"), got)

	// Files outside the base directory land at the top of the output
	got, _ = outputPath(filepath.Join("other", "b.css"), cfg)
	assert.Equal(t, filepath.Join("dist", "b.css"), got)

	got, _ = outputPath("a.css", FilesConfig{})
	assert.Equal(t, "a.css", got)

	_, ok = outputPath("a.css", FilesConfig{DryRun: true})
	assert.False(t, ok)
}
