package attributes

import (
	"fmt"
	"reflect"

	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

// Definition describes a single declared attribute. Definitions are owned by a
// Schema and shared by every instance created from it.
type Definition struct {
	Name       string
	Type       string
	ReadOnly   bool
	Collection bool
	Default    any
}

type DefinitionDecoratorFunc func(d *Definition)

// ReadOnly marks an attribute as computed by the server. It is accepted in
// responses but never sent in a request body.
func ReadOnly() DefinitionDecoratorFunc {
	return func(d *Definition) {
		d.ReadOnly = true
	}
}

func Default(value any) DefinitionDecoratorFunc {
	return func(d *Definition) {
		d.Default = value
	}
}

func Attribute(name, typeTag string, decorators ...DefinitionDecoratorFunc) Definition {
	d := Definition{
		Name: name,
		Type: typeTag,
	}

	for _, decorator := range decorators {
		decorator(&d)
	}

	return d
}

// HasNOf declares an attribute holding zero or more values of the element type
func HasNOf(name, elementTypeTag string, decorators ...DefinitionDecoratorFunc) Definition {
	d := Attribute(name, elementTypeTag, decorators...)
	d.Collection = true
	return d
}

func (d Definition) defaultValue() any {
	if d.Default != nil {
		return d.Default
	}

	if d.Collection {
		return []any{}
	}

	return nil
}

func (d Definition) cast(registry *types.Registry, value any) (any, error) {
	vt, err := registry.Lookup(d.Type)
	if err != nil {
		return nil, err
	}

	if !d.Collection {
		return vt.Cast(value)
	}

	if value == nil {
		return []any{}, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, types.NewCoercionError(value, fmt.Sprintf("list of %s", d.Type))
	}

	result := make([]any, 0, rv.Len())
	for idx := range rv.Len() {
		element, err := vt.Cast(rv.Index(idx).Interface())
		if err != nil {
			return nil, err
		}
		result = append(result, element)
	}

	return result, nil
}

func (d Definition) serialize(registry *types.Registry, value any, forAPI bool) (any, error) {
	vt, err := registry.Lookup(d.Type)
	if err != nil {
		return nil, err
	}

	serialize := vt.Serialize
	if forAPI {
		serialize = func(v any) (any, error) { return types.SerializeForAPI(vt, v) }
	}

	if !d.Collection {
		return serialize(value)
	}

	elements, ok := value.([]any)
	if !ok {
		return value, nil
	}

	result := make([]any, 0, len(elements))
	for _, element := range elements {
		s, err := serialize(element)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}

	return result, nil
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}

	return false
}
