// # internal/scan/scanner.go
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Scanner walks lint roots and selects the Python sources to analyze,
// honoring glob-style dir and file exclusions.
type Scanner struct {
	dirGlobs  []glob.Glob
	fileGlobs []glob.Glob
}

func NewScanner(excludeDirs, excludeFiles []string) (*Scanner, error) {
	s := &Scanner{}

	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		s.dirGlobs = append(s.dirGlobs, g)
	}

	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		s.fileGlobs = append(s.fileGlobs, g)
	}

	return s, nil
}

// PythonFiles returns the .py files under the given roots, sorted, with
// excluded directories pruned and excluded files dropped.
func (s *Scanner) PythonFiles(roots []string) ([]string, error) {
	var files []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if strings.HasSuffix(root, ".py") {
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range s.dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !strings.HasSuffix(base, ".py") {
				return nil
			}

			for _, g := range s.fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// ExcludesDir reports whether a directory base name matches an exclusion,
// for callers that prune trees themselves (the watcher).
func (s *Scanner) ExcludesDir(base string) bool {
	for _, g := range s.dirGlobs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// ExcludesFile reports whether a file base name matches an exclusion.
func (s *Scanner) ExcludesFile(base string) bool {
	for _, g := range s.fileGlobs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// AppDirs lists the immediate subdirectories of a root that look like app
// repositories, skipping hidden entries. Used for multi-app scans.
func AppDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(root, e.Name()))
	}
	sort.Strings(dirs)
	return dirs, nil
}
