package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes code that failed to format next to the
// intended output, as name.unformatted.go. Errors are for the caller to drop.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"
	p := filepath.Join(outDir, debugName)

	return os.WriteFile(p, content, filePerm)
}
