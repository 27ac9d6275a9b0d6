package cli

import (
	"fmt"
	"os"
)

// readSchemaFile reads the raw bytes of a schema document, used both to
// feed the XML loader and to key the build cache on content hash.
func readSchemaFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return data, nil
}
