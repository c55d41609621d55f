// Package alias loads the static target-field-name -> synonym table and
// serves O(1) normalized-alias lookup to the Field Resolver's Stage A.
// Aliases are data, not code: see assets/aliases/*.yaml.
package alias

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yourorg/hr-field-resolver/internal/normalize"
)

// Entry is the raw on-disk shape: one target field mapped to its synonyms.
type Entry struct {
	Target  string   `yaml:"target"`
	Aliases []string `yaml:"aliases"`
}

// entityFile is the top-level shape of assets/aliases/<entity>.yaml.
type entityFile struct {
	Entity  string  `yaml:"entity"`
	Entries []Entry `yaml:"entries"`
}

// Dictionary maps normalized alias strings to target field names, scoped
// per entity. An alias belongs to at most one target within a given
// entity (enforced at load time).
type Dictionary struct {
	// perEntity[entity][normalizedAlias] = targetFieldName
	perEntity map[string]map[string]string
	// raw[entity][target] = []alias, preserved for introspection/tests.
	raw map[string]map[string][]string
}

// New builds an empty Dictionary. Use LoadDir to populate it from
// static data, or LoadEntries to add in-memory defaults (e.g. the built-in
// fallback table).
func New() *Dictionary {
	return &Dictionary{
		perEntity: make(map[string]map[string]string),
		raw:       make(map[string]map[string][]string),
	}
}

// LoadDir loads every *.yaml file under dir into a fresh dictionary.
func LoadDir(dir string) (*Dictionary, error) {
	d := New()
	if err := mergeDir(d, dir); err != nil {
		return nil, err
	}
	return d, nil
}

// mergeDir loads every *.yaml file under dir into an existing dictionary,
// adding entities not already present and extending the synonym lists of
// ones that are.
func mergeDir(d *Dictionary, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("alias: reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("alias: reading %s: %w", path, err)
		}
		var file entityFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("alias: parsing %s: %w", path, err)
		}
		if err := d.LoadEntries(file.Entity, file.Entries); err != nil {
			return fmt.Errorf("alias: %s: %w", path, err)
		}
	}
	return nil
}

// LoadEntries adds alias entries for one entity, failing loading if the
// same normalized alias appears under two targets (configuration error,
// per spec §4.2 — this invariant is checked at load time, not query time).
func (d *Dictionary) LoadEntries(entity string, entries []Entry) error {
	if d.perEntity[entity] == nil {
		d.perEntity[entity] = make(map[string]string)
	}
	if d.raw[entity] == nil {
		d.raw[entity] = make(map[string][]string)
	}
	lookup := d.perEntity[entity]

	for _, entry := range entries {
		d.raw[entity][entry.Target] = append(d.raw[entity][entry.Target], entry.Aliases...)
		for _, a := range entry.Aliases {
			na := normalize.Normalize(a)
			if na == "" {
				continue
			}
			if existing, ok := lookup[na]; ok && existing != entry.Target {
				return fmt.Errorf("alias: normalized alias %q (from %q) maps to both %q and %q",
					na, a, existing, entry.Target)
			}
			lookup[na] = entry.Target
		}
	}
	return nil
}

// Lookup returns the target field name for a normalized source column
// name within the given entity, per spec §4.2 `lookup_alias`.
func (d *Dictionary) Lookup(entity, normalizedSource string) (string, bool) {
	lookup, ok := d.perEntity[entity]
	if !ok {
		return "", false
	}
	target, ok := lookup[normalizedSource]
	return target, ok
}

// AliasesFor returns the raw (un-normalized) alias list registered for a
// target field, used by the Embedding Index to build its context
// documents (§4.4 "{display_name, description, example, aliases}").
func (d *Dictionary) AliasesFor(entity, target string) []string {
	return d.raw[entity][target]
}
