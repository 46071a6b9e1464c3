package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return value, fmt.Errorf("file not found: %s", file)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("decode %s: %w", file, err)
	}
	return value, nil
}

// Computes a content version over all given files.
//
// Empty paths are skipped, a missing file is an error.
func HashFiles(files ...string) (uint64, error) {
	digest := xxhash.New()
	for _, file := range files {
		if file == "" {
			continue
		}
		f, err := os.Open(file)
		if err != nil {
			return 0, err
		}
		// separate files so that moving bytes between them changes the hash
		digest.WriteString(file)
		_, err = io.Copy(digest, f)
		f.Close()
		if err != nil {
			return 0, fmt.Errorf("hash %s: %w", file, err)
		}
	}
	return digest.Sum64(), nil
}
