package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// Candidate is one (target, similarity) result from a Query, similarity
// already clipped to [0,1].
type Candidate struct {
	Target     string
	Similarity float64
}

// entityIndex is the built, read-only matrix for one entity.
type entityIndex struct {
	targets []string
	vectors [][]float32
}

// Index builds per-target-field embeddings lazily on first use, persists
// them to disk, and answers cosine-similarity top-k queries. It is
// read-mostly and safe for concurrent queries once an entity is built;
// the build step for a given entity is guarded by a one-shot barrier so
// concurrent first-callers don't duplicate work (spec §5 "lazy
// initialization guarded by a one-shot barrier").
type Index struct {
	encoder  TextEncoder
	registry *schemaregistry.Registry
	aliases  *alias.Dictionary
	cacheDir string

	mu      sync.RWMutex
	built   map[string]*entityIndex
	once    map[string]*sync.Once
	onceMu  sync.Mutex
	unavail bool // set once if the encoder is nil; Stage B degrades cleanly
}

// NewIndex constructs an Index. encoder may be nil, in which case the
// index reports itself unavailable and every Query call returns
// ErrUnavailable — the Resolver is expected to catch this and degrade to
// stages A+C (§4.3 "Embedding Index unavailable").
func NewIndex(encoder TextEncoder, registry *schemaregistry.Registry, aliases *alias.Dictionary, cacheDir string) *Index {
	return &Index{
		encoder:  encoder,
		registry: registry,
		aliases:  aliases,
		cacheDir: cacheDir,
		built:    make(map[string]*entityIndex),
		once:     make(map[string]*sync.Once),
		unavail:  encoder == nil,
	}
}

// ErrUnavailable is returned by Query when no encoder is configured.
var ErrUnavailable = fmt.Errorf("embedding: index unavailable, no text encoder configured")

func (idx *Index) onceFor(entity string) *sync.Once {
	idx.onceMu.Lock()
	defer idx.onceMu.Unlock()
	o, ok := idx.once[entity]
	if !ok {
		o = &sync.Once{}
		idx.once[entity] = o
	}
	return o
}

// Ensure builds the index for entity if it hasn't been built yet,
// preferring a valid disk cache over a fresh embedding call.
func (idx *Index) Ensure(ctx context.Context, entity string) error {
	if idx.unavail {
		return ErrUnavailable
	}

	var buildErr error
	idx.onceFor(entity).Do(func() {
		buildErr = idx.build(ctx, entity)
	})

	idx.mu.RLock()
	_, ok := idx.built[entity]
	idx.mu.RUnlock()
	if !ok && buildErr == nil {
		buildErr = fmt.Errorf("embedding: entity %q failed to build on a previous attempt", entity)
	}
	return buildErr
}

func (idx *Index) build(ctx context.Context, entity string) error {
	schema, ok := idx.registry.Get(entity)
	if !ok {
		return fmt.Errorf("embedding: unknown entity %q", entity)
	}
	schemaHash, _ := idx.registry.SchemaHash(entity)
	path := cacheFilePath(idx.cacheDir, entity, schemaHash, idx.encoder.ModelID())

	if cached, err := loadCache(path); err == nil && cached.SchemaHash == schemaHash && cached.ModelID == idx.encoder.ModelID() {
		idx.mu.Lock()
		idx.built[entity] = &entityIndex{targets: cached.Targets, vectors: cached.Vectors}
		idx.mu.Unlock()
		slog.Info("embedding index loaded from cache", "entity", entity, "path", path)
		return nil
	}

	docs := make([]string, 0, len(schema.Fields))
	targets := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		docs = append(docs, contextDocument(f, idx.aliases.AliasesFor(entity, f.Name)))
		targets = append(targets, f.Name)
	}

	vectors, err := idx.encoder.Embed(ctx, docs)
	if err != nil {
		return fmt.Errorf("embedding: building index for %q: %w", entity, err)
	}

	idx.mu.Lock()
	idx.built[entity] = &entityIndex{targets: targets, vectors: vectors}
	idx.mu.Unlock()

	if err := saveCache(path, &persistedMatrix{
		Entity:     entity,
		SchemaHash: schemaHash,
		ModelID:    idx.encoder.ModelID(),
		Targets:    targets,
		Vectors:    vectors,
	}); err != nil {
		slog.Warn("embedding: failed to persist cache, will rebuild next process start", "entity", entity, "error", err)
	}

	return nil
}

// contextDocument concatenates a field's display name, description,
// example, and aliases into the text the encoder embeds (§4.4).
func contextDocument(f schemaregistry.FieldDefinition, aliases []string) string {
	var b strings.Builder
	b.WriteString(f.DisplayName)
	if f.Description != "" {
		b.WriteString(". ")
		b.WriteString(f.Description)
	}
	if f.Example != "" {
		b.WriteString(". Example: ")
		b.WriteString(f.Example)
	}
	if len(aliases) > 0 {
		b.WriteString(". Also known as: ")
		b.WriteString(strings.Join(aliases, ", "))
	}
	return b.String()
}

// Query embeds text and returns every target's cosine similarity for
// entity, sorted descending. Ensure must have succeeded for entity first.
func (idx *Index) Query(ctx context.Context, entity, text string) ([]Candidate, error) {
	if idx.unavail {
		return nil, ErrUnavailable
	}

	idx.mu.RLock()
	built, ok := idx.built[entity]
	idx.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("embedding: entity %q not built, call Ensure first", entity)
	}

	vecs, err := idx.encoder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding: query embed failed: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embedding: encoder returned no vector for query")
	}
	query := vecs[0]

	out := make([]Candidate, len(built.targets))
	for i, target := range built.targets {
		sim := cosineSimilarity(query, built.vectors[i])
		out[i] = Candidate{Target: target, Similarity: clip01(sim)}
	}

	sortDescending(out)
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func sortDescending(candidates []Candidate) {
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].Similarity > candidates[j-1].Similarity; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
}
