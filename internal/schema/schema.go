// Package schema loads the key mapping tables that drive normalization. A
// mapping table names, per resource kind, the source fields worth keeping and
// the field each one renames to. Table order is meaningful: normalized
// records emit fields in mapping order.
package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Resource kinds with a mapping table.
const (
	KindPlanet   = "planet"
	KindSpecies  = "species"
	KindDroid    = "droid"
	KindPerson   = "person"
	KindStarship = "starship"
)

var (
	ErrMappingsRead  = errors.New("failed to read key mappings file")
	ErrMappingsParse = errors.New("failed to parse key mappings file")
	ErrEmptyMappings = errors.New("key mappings define no kinds")
	ErrUnknownKind   = errors.New("unknown resource kind")
)

// FieldMapping renames one source field. From and To are equal when the
// field keeps its name.
type FieldMapping struct {
	From string
	To   string
}

// KeyMappings holds the ordered field mappings for each resource kind.
type KeyMappings map[string][]FieldMapping

// Kind returns the ordered field mappings for a resource kind.
func (km KeyMappings) Kind(name string) ([]FieldMapping, error) {
	fields, ok := km[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}

	return fields, nil
}

// Load reads a key mappings file. The file holds one top-level mapping per
// resource kind; JSON files parse too since YAML is a superset.
func Load(path string) (KeyMappings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingsRead, err)
	}

	return Parse(data)
}

// Parse decodes key mappings from raw bytes, preserving the field order the
// document declares.
func Parse(data []byte) (KeyMappings, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingsParse, err)
	}

	if len(doc.Content) == 0 {
		return nil, ErrEmptyMappings
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrMappingsParse)
	}

	mappings := make(KeyMappings, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		kindNode := root.Content[i]
		bodyNode := root.Content[i+1]

		if bodyNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: kind %q is not a mapping", ErrMappingsParse, kindNode.Value)
		}

		fields := make([]FieldMapping, 0, len(bodyNode.Content)/2)

		for j := 0; j+1 < len(bodyNode.Content); j += 2 {
			fromNode := bodyNode.Content[j]
			toNode := bodyNode.Content[j+1]

			if fromNode.Kind != yaml.ScalarNode || toNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: kind %q holds a non-scalar field mapping", ErrMappingsParse, kindNode.Value)
			}

			fields = append(fields, FieldMapping{From: fromNode.Value, To: toNode.Value})
		}

		mappings[kindNode.Value] = fields
	}

	if len(mappings) == 0 {
		return nil, ErrEmptyMappings
	}

	return mappings, nil
}
