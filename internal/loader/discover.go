package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverOptions controls which files Discover returns.
type DiscoverOptions struct {
	// Roots are files or directories to search. Files are returned as-is.
	Roots []string
	// Include holds base name glob patterns, e.g. "*.yml".
	Include []string
	// PathContains, when set, must be a substring of the slash-separated
	// absolute path of a file found while walking a directory root.
	PathContains string
	// BaseDir is used to compute the display path of every file.
	BaseDir string
}

// File is a discovered document.
type File struct {
	Path    string // absolute path
	RelPath string // path relative to BaseDir, slash-separated
}

// Discover walks the roots and returns the matching files sorted by path.
func (l *Loader) Discover(opts DiscoverOptions) ([]File, error) {
	seen := make(map[string]bool)
	var files []File

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = filepath.Clean(path)
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		files = append(files, File{Path: abs, RelPath: relPath(opts.BaseDir, abs)})
	}

	for _, root := range opts.Roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read search path %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		l.logger.Debug("discovering documents", "root", root)

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !opts.walkMatch(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	l.logger.Debug("discovered documents", "count", len(files))
	return files, nil
}

// walkMatch reports whether a file found below a directory root passes the
// include patterns and the path filter.
func (o DiscoverOptions) walkMatch(path string) bool {
	if !matchesAny(filepath.Base(path), o.Include) {
		return false
	}
	if o.PathContains == "" {
		return true
	}
	abs, err := filepath.Abs(path)
	return err == nil && strings.Contains(filepath.ToSlash(abs), o.PathContains)
}

func matchesAny(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func relPath(base, path string) string {
	if base == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
