package fileops

import (
	"fmt"
	"os"
)

// ReadFile reads the whole file at path into memory.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return data, nil
}
