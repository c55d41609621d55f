package schemaregistry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry holds EntitySchemas keyed by entity name. It is built once at
// process init (default schemas plus any on-disk overrides found under
// basePath) and is read-only thereafter; reads take a shared read lock,
// so concurrent readers don't block each other.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*EntitySchema
	hashes  map[string]string
}

// NewRegistry builds a Registry from the built-in default schemas. Use
// NewRegistryWithPath to additionally discover *.yaml files on disk.
func NewRegistry() (*Registry, error) {
	return NewRegistryWithPath("")
}

// NewRegistryWithPath builds a Registry from the built-in defaults, then
// loads every *.yaml file under basePath, letting on-disk schemas override
// built-ins of the same entity name. Mirrors the "hardcoded defaults plus
// filesystem discovery" pattern used for on-disk configuration elsewhere
// in this codebase.
func NewRegistryWithPath(basePath string) (*Registry, error) {
	r := &Registry{
		schemas: make(map[string]*EntitySchema),
		hashes:  make(map[string]string),
	}

	for _, schema := range defaultSchemas() {
		if err := r.add(schema); err != nil {
			return nil, err
		}
	}

	if basePath != "" {
		entries, err := os.ReadDir(basePath)
		if err != nil {
			if os.IsNotExist(err) {
				slog.Warn("schemaregistry: base path does not exist, using built-in schemas only", "path", basePath)
				return r, nil
			}
			return nil, fmt.Errorf("schemaregistry: reading %s: %w", basePath, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
				continue
			}
			path := filepath.Join(basePath, entry.Name())
			schema, err := loadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("schemaregistry: loading %s: %w", path, err)
			}
			if err := r.add(schema); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

func loadFromFile(path string) (*EntitySchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema EntitySchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

func (r *Registry) add(schema *EntitySchema) error {
	if err := schema.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[schema.Entity] = schema
	r.hashes[schema.Entity] = computeHash(schema)
	return nil
}

// Get returns the EntitySchema for the given entity name.
func (r *Registry) Get(entity string) (*EntitySchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[entity]
	return s, ok
}

// Entities returns the names of all registered entities, sorted.
func (r *Registry) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaHash returns the content hash used to key the embedding cache
// (§6 "Persisted state layout": `{entity}-{schema_hash}-{model_id}.bin`).
// It changes whenever the entity's field list changes, forcing a rebuild.
func (r *Registry) SchemaHash(entity string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hashes[entity]
	return h, ok
}

func computeHash(schema *EntitySchema) string {
	h := sha256.New()
	fmt.Fprintf(h, "entity:%s\n", schema.Entity)
	for _, f := range schema.Fields {
		fmt.Fprintf(h, "%s|%s|%s|%v|%s|%s\n", f.Name, f.DisplayName, f.SemanticType, f.Required, f.Format, f.Example)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
