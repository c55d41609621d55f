// Package schemaregistry loads entity schemas (Employee, Candidate,
// Position, …) from static YAML data and serves field lookup to the rest
// of the resolution pipeline. Schemas are immutable after load.
package schemaregistry

import "fmt"

// SemanticType is the closed vocabulary of field value types a
// FieldDefinition can declare.
type SemanticType string

const (
	TypeString      SemanticType = "string"
	TypeNumber      SemanticType = "number"
	TypeDate        SemanticType = "date"
	TypeDateTime    SemanticType = "datetime"
	TypeEmail       SemanticType = "email"
	TypeBoolean     SemanticType = "boolean"
	TypeListString  SemanticType = "list<string>"
	TypeListEmail   SemanticType = "list<email>"
	TypeListPhone   SemanticType = "list<phone>"
	TypeURL         SemanticType = "url"
)

// IsList reports whether t is one of the list<T> semantic types.
func (t SemanticType) IsList() bool {
	switch t {
	case TypeListString, TypeListEmail, TypeListPhone:
		return true
	default:
		return false
	}
}

// FieldDefinition describes one target field of an EntitySchema. Immutable
// after load.
type FieldDefinition struct {
	Name         string       `yaml:"name"`
	DisplayName  string       `yaml:"display_name"`
	SemanticType SemanticType `yaml:"semantic_type"`
	Required     bool         `yaml:"required"`
	MaxLength    int          `yaml:"max_length,omitempty"`
	Regex        string       `yaml:"regex,omitempty"`
	Format       string       `yaml:"format,omitempty"`
	Example      string       `yaml:"example,omitempty"`
	Description  string       `yaml:"description,omitempty"`
	DefaultValue string       `yaml:"default_value,omitempty"`
}

// EntitySchema is an ordered list of FieldDefinitions for one target
// entity, created once on process init and never mutated.
type EntitySchema struct {
	Entity      string            `yaml:"entity"`
	Description string            `yaml:"description,omitempty"`
	Fields      []FieldDefinition `yaml:"fields"`
}

// FieldByName returns the field definition with the given canonical name,
// or false if the entity has no such field.
func (s *EntitySchema) FieldByName(name string) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// RequiredFields returns the subset of Fields marked required, in schema
// order.
func (s *EntitySchema) RequiredFields() []FieldDefinition {
	var out []FieldDefinition
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

func (s *EntitySchema) validate() error {
	if s.Entity == "" {
		return fmt.Errorf("schemaregistry: entity schema missing entity name")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schemaregistry: entity %q declares no fields", s.Entity)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schemaregistry: entity %q has a field with empty name", s.Entity)
		}
		if seen[f.Name] {
			return fmt.Errorf("schemaregistry: entity %q declares duplicate field %q", s.Entity, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
