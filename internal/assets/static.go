// Package assets handles static file copying and stylesheet compilation into
// the output tree.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// CopyStatic copies every file in <staticDir>/<name> into a freshly created
// <outputDir>/<name>. The copy is flat (no recursion) and follows symlinks.
func CopyStatic(staticDir, outputDir, name string) error {
	src := filepath.Join(staticDir, name)
	dst := filepath.Join(outputDir, name)

	if err := os.Mkdir(dst, 0o755); err != nil {
		return fmt.Errorf("create static output dir %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("list static dir %s: %w", src, err)
	}

	for _, entry := range entries {
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read static file %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write static file %s: %w", dst, err)
	}
	return nil
}
