package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CollectJavaFiles resolves manifest include entries to a sorted, duplicate
// free list of .java files. Entries are interpreted relative to baseDir;
// directory entries are walked recursively.
func CollectJavaFiles(baseDir string, includes []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, entry := range includes {
		path := entry
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, entry)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("include %q: %w", entry, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".java") {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %q: %w", entry, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
