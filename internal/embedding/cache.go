package embedding

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// persistedMatrix is the on-disk gob encoding of one entity's embedding
// matrix, keyed per spec §6 as `{entity}-{schema_hash}-{model_id}.bin`.
type persistedMatrix struct {
	Entity     string
	SchemaHash string
	ModelID    string
	Targets    []string
	Vectors    [][]float32
}

func cacheFilePath(dir, entity, schemaHash, modelID string) string {
	name := fmt.Sprintf("%s-%s-%s.bin", entity, schemaHash, sanitizeModelID(modelID))
	return filepath.Join(dir, name)
}

func sanitizeModelID(modelID string) string {
	out := make([]rune, 0, len(modelID))
	for _, r := range modelID {
		if r == '/' || r == '\\' || r == ' ' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func loadCache(path string) (*persistedMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m persistedMatrix
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("embedding: decoding cache %s: %w", path, err)
	}
	return &m, nil
}

func saveCache(path string, m *persistedMatrix) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("embedding: creating cache dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("embedding: creating cache file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("embedding: encoding cache: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
