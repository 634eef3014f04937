// Package transform normalizes raw catalog records into thinned, typed
// representations driven by schema key mappings. Each transformer walks its
// kind's mapping table in order, nils out sentinel values before any
// coercion, and emits fields under their mapped names.
package transform

import (
	"errors"
	"fmt"

	"github.com/steven-jacovitch/506-Final/internal/coerce"
	"github.com/steven-jacovitch/506-Final/internal/record"
	"github.com/steven-jacovitch/506-Final/internal/schema"
)

// ErrNoResolver indicates a linked resource was encountered without a
// resolver to expand it.
var ErrNoResolver = errors.New("no resolver configured for linked resources")

// ErrUnexpectedResource indicates a linked resource resolved to something
// other than a record.
var ErrUnexpectedResource = errors.New("unexpected resource shape")

// Resolver retrieves a linked resource by URL when a transformer expands a
// reference field. The cache satisfies this interface.
type Resolver interface {
	Resolve(url string, params map[string]string) (any, error)
}

// Transformer builds normalized records according to a key mapping table.
type Transformer struct {
	mappings schema.KeyMappings
	resolver Resolver
}

// NewTransformer creates a transformer for the given mapping table. The
// resolver expands linked homeworld and species references; it may be nil
// when only self-contained kinds are transformed.
func NewTransformer(mappings schema.KeyMappings, resolver Resolver) *Transformer {
	return &Transformer{
		mappings: mappings,
		resolver: resolver,
	}
}

// Planet returns the thinned planet representation of data.
func (t *Transformer) Planet(data *record.Record) (*record.Record, error) {
	fields, err := t.mappings.Kind(schema.KindPlanet)
	if err != nil {
		return nil, err
	}

	planet := record.New()

	for _, field := range fields {
		value := coerce.ToNone(fieldValue(data, field.From))

		if value != nil {
			switch field.From {
			case "suns", "moons", "diameter", "population":
				value = coerce.ToInt(value)
			case "orbital_period":
				value = coerce.ToFloat(value)
			case "gravity":
				value = coerce.ToGravity(value)
			case "climate", "terrain":
				value = coerce.ToList(value, ", ")
			}
		}

		planet.Set(field.To, value)
	}

	return planet, nil
}

// Species returns the thinned species representation of data.
func (t *Transformer) Species(data *record.Record) (*record.Record, error) {
	fields, err := t.mappings.Kind(schema.KindSpecies)
	if err != nil {
		return nil, err
	}

	species := record.New()

	for _, field := range fields {
		value := coerce.ToNone(fieldValue(data, field.From))

		if value != nil {
			switch field.From {
			case "average_height":
				value = coerce.ToFloat(value)
			case "average_lifespan":
				value = coerce.ToInt(value)
			}
		}

		species.Set(field.To, value)
	}

	return species, nil
}

// Droid returns the thinned droid representation of data.
func (t *Transformer) Droid(data *record.Record) (*record.Record, error) {
	fields, err := t.mappings.Kind(schema.KindDroid)
	if err != nil {
		return nil, err
	}

	droid := record.New()

	for _, field := range fields {
		value := coerce.ToNone(fieldValue(data, field.From))

		if value != nil {
			switch field.From {
			case "height", "mass":
				value = coerce.ToFloat(value)
			case "create_year":
				value = coerce.ToYearEra(value)
			case "equipment", "instructions":
				value = coerce.ToList(value, "|")
			}
		}

		droid.Set(field.To, value)
	}

	return droid, nil
}

// Starship returns the thinned starship representation of data. Crew members
// and passengers board separately; see AssignCrewMembers and BoardPassengers.
func (t *Transformer) Starship(data *record.Record) (*record.Record, error) {
	fields, err := t.mappings.Kind(schema.KindStarship)
	if err != nil {
		return nil, err
	}

	starship := record.New()

	for _, field := range fields {
		value := coerce.ToNone(fieldValue(data, field.From))

		if value != nil {
			switch field.From {
			case "length", "hyperdrive_rating":
				value = coerce.ToFloat(value)
			case "MGLT", "crew", "passengers", "cargo_capacity", "max_atmosphering_speed":
				value = coerce.ToInt(value)
			case "armament":
				value = coerce.ToList(value, ",")
			}
		}

		starship.Set(field.To, value)
	}

	return starship, nil
}

// Person returns the thinned person representation of data. The homeworld
// reference resolves to a full planet record, enriched from planets when a
// matching supplementary record exists there. The species reference resolves
// to a full species record. Absent references stay nil.
func (t *Transformer) Person(data *record.Record, planets []*record.Record) (*record.Record, error) {
	fields, err := t.mappings.Kind(schema.KindPerson)
	if err != nil {
		return nil, err
	}

	person := record.New()

	for _, field := range fields {
		value := coerce.ToNone(fieldValue(data, field.From))

		if value != nil {
			switch field.From {
			case "height", "mass":
				value = coerce.ToFloat(value)
			case "birth_year":
				value = coerce.ToYearEra(value)
			case "homeworld":
				value, err = t.expandHomeworld(value, planets)
				if err != nil {
					return nil, err
				}
			case "species":
				value, err = t.expandSpecies(value)
				if err != nil {
					return nil, err
				}
			}
		}

		person.Set(field.To, value)
	}

	return person, nil
}

func (t *Transformer) expandHomeworld(value any, planets []*record.Record) (any, error) {
	url, ok := value.(string)
	if !ok || url == "" {
		return nil, nil
	}

	if t.resolver == nil {
		return nil, fmt.Errorf("%w: homeworld %s", ErrNoResolver, url)
	}

	resolved, err := t.resolver.Resolve(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve homeworld %s: %w", url, err)
	}

	homeworld, ok := resolved.(*record.Record)
	if !ok {
		return nil, fmt.Errorf("%w: homeworld %s resolved to %T", ErrUnexpectedResource, url, resolved)
	}

	if len(planets) > 0 {
		name, _ := homeworld.Get("name")
		if supplement := record.FindByField(planets, "name", name); supplement != nil {
			homeworld.Merge(supplement)
		}
	}

	return t.Planet(homeworld)
}

func (t *Transformer) expandSpecies(value any) (any, error) {
	url := firstURL(value)
	if url == "" {
		return nil, nil
	}

	if t.resolver == nil {
		return nil, fmt.Errorf("%w: species %s", ErrNoResolver, url)
	}

	resolved, err := t.resolver.Resolve(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve species %s: %w", url, err)
	}

	species, ok := resolved.(*record.Record)
	if !ok {
		return nil, fmt.Errorf("%w: species %s resolved to %T", ErrUnexpectedResource, url, resolved)
	}

	return t.Species(species)
}

// firstURL extracts the reference URL from a species value, which arrives
// either as a list of URLs or a bare string.
func firstURL(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}

	return ""
}

func fieldValue(data *record.Record, key string) any {
	if data == nil {
		return nil
	}

	value, _ := data.Get(key)

	return value
}
