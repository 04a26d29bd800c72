package discover

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/facet/internal/review"
)

// Options controls file discovery.
type Options struct {
	Include     []string
	Exclude     []string
	MaxFileSize int // bytes per file; 0 uses DefaultMaxFileSize
}

// DefaultMaxFileSize caps individual file reads at 1MB. Larger files are
// almost never source code worth reviewing.
const DefaultMaxFileSize = 1 << 20

// Directories never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	".idea":        true,
	".vscode":      true,
}

// Files walks root and returns the matching files in deterministic
// (sorted path) order. Binary files and files over the size cap are skipped.
func Files(root string, opts Options) ([]review.FileRecord, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var records []review.FileRecord
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != absRoot && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !included(rel, opts.Include) || excluded(rel, opts.Exclude) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.Size() > int64(maxSize) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		if isBinary(data) {
			return nil
		}

		records = append(records, review.FileRecord{
			Path:         path,
			RelativePath: rel,
			Content:      string(data),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RelativePath < records[j].RelativePath
	})
	return records, nil
}

func included(rel string, include []string) bool {
	if len(include) == 0 {
		return true
	}
	for _, p := range include {
		if p == "**/*" || matchPattern(p, rel) {
			return true
		}
	}
	return false
}

func excluded(rel string, exclude []string) bool {
	for _, p := range exclude {
		if matchPattern(p, rel) {
			return true
		}
	}
	return false
}

// matchPattern matches rel against a glob. filepath.Match has no '**'
// support, so the common forms are handled explicitly: a leading "**/"
// matches any directory depth, a trailing "/**" matches a whole subtree.
func matchPattern(pattern, rel string) bool {
	if ok, _ := filepath.Match(pattern, rel); ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		if matchPattern(rest, rel) {
			return true
		}
		for i := 0; i < len(rel); i++ {
			if rel[i] == '/' && matchPattern(rest, rel[i+1:]) {
				return true
			}
		}
	}
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	return false
}

// isBinary reports whether data looks like a binary file: a NUL byte in the
// first 8000 bytes, the same heuristic git uses.
func isBinary(data []byte) bool {
	n := len(data)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}
