package attributes

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// Attributable is implemented by typed wrappers around an attribute set
type Attributable interface {
	Attributes() *Attributes
}

// Attributes holds the cast values of the attributes that have been set on an
// instance. A key that is present in values has been explicitly assigned,
// possibly to nil. Instances are not safe for concurrent mutation.
type Attributes struct {
	schema *Schema
	values map[string]any
}

func (a *Attributes) Attributes() *Attributes {
	return a
}

func (a *Attributes) Schema() *Schema {
	return a.schema
}

// Get returns the value of an attribute, or its default if it was never set
func (a *Attributes) Get(name string) (any, error) {
	d, err := a.schema.Definition(name)
	if err != nil {
		return nil, err
	}

	if value, ok := a.values[name]; ok {
		return value, nil
	}

	return d.defaultValue(), nil
}

func (a *Attributes) Set(name string, value any) error {
	return a.Merge(map[string]any{name: value})
}

// IsSet reports whether the attribute has been explicitly assigned
func (a *Attributes) IsSet(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Keys returns the explicitly assigned attribute names in declaration order
func (a *Attributes) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for _, d := range a.schema.definitions {
		if _, ok := a.values[d.Name]; ok {
			keys = append(keys, d.Name)
		}
	}
	return keys
}

// Merge casts and assigns every key in values, leaving other attributes as
// they are. Nothing is stored unless every value could be cast. Keys are
// processed in lexical order so the first failing key is stable.
func (a *Attributes) Merge(values map[string]any) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	cast := make(map[string]any, len(values))

	for _, name := range names {
		d, err := a.schema.Definition(name)
		if err != nil {
			return err
		}

		v, err := d.cast(a.schema.registry, values[name])
		if err != nil {
			return &AttributeError{Model: a.schema.name, Name: name, Err: err}
		}

		cast[name] = v
	}

	for name, value := range cast {
		a.values[name] = value
	}

	return nil
}

// MergeWire folds a server response into the instance. Keys that are not
// declared in the schema are skipped.
func (a *Attributes) MergeWire(ctx context.Context, values map[string]any) error {
	declared := make(map[string]any, len(values))

	for name, value := range values {
		if !a.schema.Has(name) {
			logging.GetFromContext(ctx).Debug(
				"skipping undeclared attribute",
				slog.String("model", a.schema.name), slog.String("attribute", name),
			)
			continue
		}
		declared[name] = value
	}

	return a.Merge(declared)
}

// SerializeForAPI returns the wire representation of the requested keys, or of
// every declared key when none are given. Only explicitly assigned attributes
// are included and read only attributes never are.
func (a *Attributes) SerializeForAPI(keys ...string) (map[string]any, error) {
	if len(keys) == 0 {
		keys = a.Keys()
	}

	result := make(map[string]any, len(keys))

	for _, name := range keys {
		d, err := a.schema.Definition(name)
		if err != nil {
			return nil, err
		}

		value, ok := a.values[name]
		if d.ReadOnly || !ok {
			continue
		}

		wire, err := d.serialize(a.schema.registry, value, true)
		if err != nil {
			return nil, err
		}

		result[name] = wire
	}

	return result, nil
}

// SerializeAllForAPI returns every writable attribute that has a value,
// including declared defaults, for endpoints that replace the whole document
func (a *Attributes) SerializeAllForAPI() (map[string]any, error) {
	result := make(map[string]any, len(a.schema.definitions))

	for _, d := range a.schema.definitions {
		if d.ReadOnly {
			continue
		}

		value, ok := a.values[d.Name]
		if !ok {
			value = d.defaultValue()
			if isEmpty(value) {
				continue
			}
		}

		wire, err := d.serialize(a.schema.registry, value, true)
		if err != nil {
			return nil, err
		}

		result[d.Name] = wire
	}

	return result, nil
}

// ToMap dumps the explicitly assigned attributes in their wire shape
func (a *Attributes) ToMap(enforceReadOnly bool) (map[string]any, error) {
	result := make(map[string]any, len(a.values))

	for _, d := range a.schema.definitions {
		value, ok := a.values[d.Name]
		if !ok || (enforceReadOnly && d.ReadOnly) {
			continue
		}

		wire, err := d.serialize(a.schema.registry, value, enforceReadOnly)
		if err != nil {
			return nil, err
		}

		result[d.Name] = wire
	}

	return result, nil
}

func (a *Attributes) MarshalJSON() ([]byte, error) {
	m, err := a.ToMap(false)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func (a *Attributes) String(name string) string {
	v, _ := a.Get(name)
	s, _ := v.(string)
	return s
}

func (a *Attributes) Int(name string) int64 {
	v, _ := a.Get(name)
	i, _ := v.(int64)
	return i
}

func (a *Attributes) Float(name string) float64 {
	v, _ := a.Get(name)
	f, _ := v.(float64)
	return f
}

func (a *Attributes) Bool(name string) bool {
	v, _ := a.Get(name)
	b, _ := v.(bool)
	return b
}

func (a *Attributes) Time(name string) time.Time {
	v, _ := a.Get(name)
	t, _ := v.(time.Time)
	return t
}

func (a *Attributes) Hash(name string) map[string]any {
	v, _ := a.Get(name)
	m, _ := v.(map[string]any)
	return m
}

func (a *Attributes) List(name string) []any {
	v, _ := a.Get(name)
	l, _ := v.([]any)
	return l
}

func (a *Attributes) Strings(name string) []string {
	l := a.List(name)
	result := make([]string, 0, len(l))
	for _, v := range l {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

func (a *Attributes) Nested(name string) *Attributes {
	v, _ := a.Get(name)
	n, _ := v.(*Attributes)
	return n
}

func (a *Attributes) NestedList(name string) []*Attributes {
	l := a.List(name)
	result := make([]*Attributes, 0, len(l))
	for _, v := range l {
		if n, ok := v.(*Attributes); ok {
			result = append(result, n)
		}
	}
	return result
}
