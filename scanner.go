package fluidtype

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/net/html"
)

// ClassReference is a class name found in a content file
type ClassReference struct {
	ClassName string       // "text-fluid-2"
	Location  FileLocation // Where it was found
}

// FileLocation tracks where a reference was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column (start of class name), 0 when unknown
	Text   string // Full line content for source display
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

var (
	// Patterns for class attribute values in templates and components
	classPatterns = []*regexp.Regexp{
		regexp.MustCompile(`class(?:Name)?\s*=\s*"([^"]+)"`),
		regexp.MustCompile(`class(?:Name)?\s*=\s*'([^']+)'`),
		regexp.MustCompile("class(?:Name)?\\s*=\\s*\\{\\s*[\"'`]([^\"'`]+)[\"'`]"),
		regexp.MustCompile(`templ\.Classes\(\s*"([^"]+)"`),
		regexp.MustCompile(`templ\.KV\(\s*"([^"]+)"`),
	}

	classAttrSelector = cascadia.MustCompile("[class]")

	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isHTML reports whether a file is scanned as an HTML document
func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// isGenerated checks for generated sources that mirror another content file
func isGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go") ||
		strings.HasSuffix(path, ".min.css")
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from scanning.
// Gitignore rules only apply to relative paths inside the project.
func shouldSkipFile(path string) bool {
	if isGenerated(path) {
		return true
	}

	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// expandGlobPatterns expands doublestar patterns to a deduplicated file list
func expandGlobPatterns(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// ScanContent collects class names used in the files matching patterns
func ScanContent(patterns []string) ([]ClassReference, ScanStats, error) {
	files, stats, err := expandGlobPatterns(patterns)
	if err != nil {
		return nil, stats, err
	}

	var allRefs []ClassReference
	for _, file := range files {
		refs, err := scanFile(file)
		if err != nil {
			return nil, stats, fmt.Errorf("scan %s: %w", file, err)
		}
		allRefs = append(allRefs, refs...)
	}

	return allRefs, stats, nil
}

// scanFile reads one content file
func scanFile(path string) ([]ClassReference, error) {
	// #nosec G304 - path comes from configured globs
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isHTML(path) {
		return scanHTML(content, path)
	}
	return scanLines(content, path)
}

// scanHTML queries every element with a class attribute. The HTML tree has
// no positions, so each class is located by searching the raw lines.
func scanHTML(content []byte, file string) ([]ClassReference, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	var refs []ClassReference
	for _, node := range classAttrSelector.MatchAll(doc) {
		for _, attr := range node.Attr {
			if attr.Key != "class" {
				continue
			}
			for _, class := range strings.Fields(attr.Val) {
				refs = append(refs, ClassReference{
					ClassName: class,
					Location:  locateClass(lines, class, file),
				})
			}
		}
	}
	return refs, nil
}

func locateClass(lines []string, class, file string) FileLocation {
	for i, line := range lines {
		if col := findClassColumn(line, class); col > 0 {
			return FileLocation{File: file, Line: i + 1, Column: col, Text: strings.TrimSpace(line)}
		}
	}
	return FileLocation{File: file}
}

// scanLines matches class attribute patterns line by line
func scanLines(content []byte, file string) ([]ClassReference, error) {
	var refs []ClassReference
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		refs = append(refs, extractClassesFromLine(scanner.Text(), lineNum, file)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// extractClassesFromLine returns every class listed in a class attribute on line
func extractClassesFromLine(line string, lineNum int, file string) []ClassReference {
	var refs []ClassReference
	seen := make(map[int]bool)

	for _, pattern := range classPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(line, -1) {
			if len(match) < 4 || seen[match[2]] {
				continue
			}
			seen[match[2]] = true

			value := line[match[2]:match[3]]
			offset := match[2]
			for _, class := range strings.Fields(value) {
				idx := strings.Index(value, class)
				refs = append(refs, ClassReference{
					ClassName: class,
					Location: FileLocation{
						File:   file,
						Line:   lineNum,
						Column: offset + idx + 1,
						Text:   strings.TrimSpace(line),
					},
				})
				// Advance past this token so repeated names get their own column
				value = value[idx+len(class):]
				offset += idx + len(class)
			}
		}
	}

	return refs
}

// findClassColumn locates the 1-based column where class appears as a whole
// token within line, or 0 when it does not.
func findClassColumn(line, class string) int {
	start := 0
	for {
		idx := strings.Index(line[start:], class)
		if idx == -1 {
			return 0
		}
		pos := start + idx
		end := pos + len(class)
		if isClassBoundary(line, pos-1) && isClassBoundary(line, end) {
			return pos + 1
		}
		start = pos + 1
	}
}

func isClassBoundary(line string, i int) bool {
	if i < 0 || i >= len(line) {
		return true
	}
	switch line[i] {
	case ' ', '\t', '"', '\'', '`', '=', '{', '}', ',', '(', ')':
		return true
	}
	return false
}

// UsedClasses returns the set of class names among refs
func UsedClasses(refs []ClassReference) map[string]bool {
	used := make(map[string]bool, len(refs))
	for _, ref := range refs {
		used[ref.ClassName] = true
	}
	return used
}
