package attributes

import (
	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

// Schema is the ordered set of attribute definitions for one model type.
// Type tags are resolved against the registry when values are cast, so a
// schema may reference model backed types that are registered after it has
// been declared.
type Schema struct {
	name        string
	registry    *types.Registry
	definitions []Definition
	index       map[string]int
}

func NewSchema(name string, registry *types.Registry, definitions ...Definition) *Schema {
	s := &Schema{
		name:        name,
		registry:    registry,
		definitions: make([]Definition, 0, len(definitions)),
		index:       make(map[string]int, len(definitions)),
	}

	for _, d := range definitions {
		if idx, ok := s.index[d.Name]; ok {
			s.definitions[idx] = d
			continue
		}

		s.index[d.Name] = len(s.definitions)
		s.definitions = append(s.definitions, d)
	}

	return s
}

func (s *Schema) Name() string {
	return s.name
}

func (s *Schema) Registry() *types.Registry {
	return s.registry
}

func (s *Schema) Definition(name string) (Definition, error) {
	idx, ok := s.index[name]
	if !ok {
		return Definition{}, types.NewMissingKeyError(name)
	}
	return s.definitions[idx], nil
}

func (s *Schema) Definitions() []Definition {
	defs := make([]Definition, len(s.definitions))
	copy(defs, s.definitions)
	return defs
}

func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// New creates an instance and assigns every key present in values
func (s *Schema) New(values map[string]any) (*Attributes, error) {
	a := s.Empty()

	if err := a.Merge(values); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Schema) Empty() *Attributes {
	return &Attributes{
		schema: s,
		values: map[string]any{},
	}
}
