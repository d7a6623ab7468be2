package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/mdrtf"
)

// gen-golden renders every testdata/**/*.md with the default configuration
// and writes the result next to it as .rtf, flattening subdirectories into
// the file name.
func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no markdown files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		var out bytes.Buffer
		if err := mdrtf.Convert(src, &out, mdrtf.DefaultConfig()); err != nil {
			fatalf("render %s: %v", path, err)
		}
		goldenPath := goldenPath(root, path)
		if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
	}
}

func goldenPath(root string, mdPath string) string {
	rel, err := filepath.Rel(root, mdPath)
	if err != nil {
		rel = mdPath
	}
	name := strings.TrimSuffix(rel, ".md")
	name = strings.ReplaceAll(filepath.ToSlash(name), "/", "__")
	return filepath.Join(root, name+".rtf")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
