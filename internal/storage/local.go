package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type LocalStorage struct {
	outputDir string
}

func NewLocalStorage(outputDir string) *LocalStorage {
	return &LocalStorage{outputDir: outputDir}
}

func (s *LocalStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}

	return path, nil
}

// List returns saved result paths, oldest first. A missing directory holds no results.
func (s *LocalStorage) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var results []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), resultExt) {
			continue
		}
		results = append(results, filepath.Join(s.outputDir, entry.Name()))
	}
	sort.Strings(results)

	return results, nil
}

func (s *LocalStorage) Close() error {
	return nil
}
