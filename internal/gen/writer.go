package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its package directory.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		err := os.MkdirAll(file.Dir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := filepath.Join(file.Dir, file.Filename)

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", outputPath, err)
		}
	}

	return nil
}

// Stale returns the paths of files whose content on disk differs from the
// generated one, including files that do not exist yet.
func Stale(files []GeneratedFile) ([]string, error) {
	var stale []string

	for _, file := range files {
		outputPath := filepath.Join(file.Dir, file.Filename)

		current, err := os.ReadFile(outputPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, outputPath)
		case err != nil:
			return nil, fmt.Errorf("reading file %s: %w", outputPath, err)
		case !bytes.Equal(current, file.Content):
			stale = append(stale, outputPath)
		}
	}

	return stale, nil
}
