package attributes

import (
	"fmt"
	"reflect"

	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

// ModelType is a value type for attributes that hold a nested attributable
// object on the wire
type ModelType struct {
	schema   *Schema
	jsonKeys map[string]string
}

type ModelTypeOption func(mt *ModelType)

// WithJSONKeys maps attribute names to the keys used for them on the wire
func WithJSONKeys(keys map[string]string) ModelTypeOption {
	return func(mt *ModelType) {
		for name, key := range keys {
			mt.jsonKeys[name] = key
		}
	}
}

func NewModelType(schema *Schema, options ...ModelTypeOption) *ModelType {
	mt := &ModelType{
		schema:   schema,
		jsonKeys: map[string]string{},
	}

	for _, option := range options {
		option(mt)
	}

	return mt
}

func (mt *ModelType) Schema() *Schema {
	return mt.schema
}

func (mt *ModelType) JSONKey(name string) string {
	if key, ok := mt.jsonKeys[name]; ok {
		return key
	}
	return name
}

// Cast accepts either a raw wire object or an already cast instance of the
// same schema. Instances are returned as is.
func (mt *ModelType) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		values := make(map[string]any, len(v))
		for _, d := range mt.schema.definitions {
			if wire, ok := v[mt.JSONKey(d.Name)]; ok {
				values[d.Name] = wire
			}
		}
		return mt.schema.New(values)
	case Attributable:
		if isNilPointer(v) {
			return nil, nil
		}
		a := v.Attributes()
		if a == nil || a.schema != mt.schema {
			return nil, types.NewCoercionError(value, mt.schema.name)
		}
		return a, nil
	default:
		return nil, types.NewCoercionError(value, mt.schema.name)
	}
}

func (mt *ModelType) Serialize(value any) (any, error) {
	return mt.serialize(value, false)
}

// SerializeForAPI drops read only attributes of the nested object
func (mt *ModelType) SerializeForAPI(value any) (any, error) {
	return mt.serialize(value, true)
}

func (mt *ModelType) serialize(value any, enforceReadOnly bool) (any, error) {
	if value == nil || isNilPointer(value) {
		return nil, nil
	}

	attributable, ok := value.(Attributable)
	if !ok {
		return nil, fmt.Errorf("unable to serialize %T as %s", value, mt.schema.name)
	}

	m, err := attributable.Attributes().ToMap(enforceReadOnly)
	if err != nil {
		return nil, err
	}

	wire := make(map[string]any, len(m))
	for name, v := range m {
		wire[mt.JSONKey(name)] = v
	}

	return wire, nil
}

// isNilPointer catches typed nil pointers hidden in an interface value
func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
