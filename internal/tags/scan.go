package tags

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FindMusicFiles resolves a path to playable tracks. A file path yields
// itself (when it is a supported format); a directory is walked recursively
// and its music files returned in sorted order. Unreadable subdirectories
// are skipped rather than failing the whole scan.
func FindMusicFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if IsMusicFile(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var found []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsMusicFile(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}
