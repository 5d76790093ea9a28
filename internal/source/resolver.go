// Package source locates log files and streams their lines.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Resolve enumerates the log files selected by root and the given filters.
//
// When root is a regular file it is returned iff it passes the include and
// exclude globs. When root is a directory, its regular files are collected
// (direct children only unless recursive is set). Each candidate is matched
// by base name and by path relative to root; a match on either counts, and
// exclude always wins over include. Missing include defaults to ["*"].
//
// The result is sorted by full path for deterministic ordering. A missing
// root surfaces the underlying fs.ErrNotExist.
func Resolve(root string, recursive bool, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{"*"}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("log source %s: %w", root, err)
	}

	if info.Mode().IsRegular() {
		name := filepath.Base(root)
		if matchesAny(include, name, name) && !matchesAny(exclude, name, name) {
			return []string{root}, nil
		}
		return nil, nil
	}

	if !info.IsDir() {
		// Sockets, devices and friends are not log sources.
		return nil, nil
	}

	var files []string
	consider := func(path string, rel string) {
		name := filepath.Base(path)
		if matchesAny(include, rel, name) && !matchesAny(exclude, rel, name) {
			files = append(files, path)
		}
	}

	if recursive {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			consider(path, rel)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	} else {
		entries, readErr := os.ReadDir(root)
		if readErr != nil {
			return nil, fmt.Errorf("reading directory %s: %w", root, readErr)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			consider(filepath.Join(root, entry.Name()), entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// matchesAny reports whether any pattern matches the candidate's relative
// path or base name. Malformed patterns simply never match.
func matchesAny(patterns []string, rel, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
