// Package fs holds the filesystem and environment helpers used by the CLI.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// JSONExt is the extension of files picked up when a directory is given as input.
const JSONExt = ".json"

// CanonicalPath returns the absolute path with symlinks resolved.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}

// ExpandInputs turns the given paths into a list of files. Files are kept in
// the order given; a directory contributes every .json file beneath it in
// lexical order. Repeated files are listed once.
func ExpandInputs(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &InputNotFoundError{Path: p}
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), JSONExt) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, &NoJSONFilesError{Dir: p}
		}
		slices.Sort(found)
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}
