package attributes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
	"github.com/matryer/is"
)

func TestAssignOfUnknownAttributeFails(t *testing.T) {
	is, schema := setupAttributesTest(t)

	_, err := schema.New(map[string]any{"colour": "red"})

	var mke *types.MissingKeyError
	is.True(errors.As(err, &mke))
	is.Equal(mke.Key, "colour")
}

func TestUnsetAttributesAreAbsentButReadAsDefaults(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a, err := schema.New(map[string]any{"name": "Work"})
	is.NoErr(err)

	is.True(a.IsSet("name"))
	is.True(!a.IsSet("description"))
	is.True(!a.IsSet("tags"))

	tags, err := a.Get("tags")
	is.NoErr(err)
	is.Equal(tags, []any{}) // collections default to an empty sequence

	timezone, err := a.Get("timezone")
	is.NoErr(err)
	is.Equal(timezone, "UTC")

	payload, err := a.SerializeForAPI()
	is.NoErr(err)
	is.Equal(payload, map[string]any{"name": "Work"})
}

func TestExplicitNilIsTrackedAsSet(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a, err := schema.New(map[string]any{"description": nil})
	is.NoErr(err)

	is.True(a.IsSet("description"))

	payload, err := a.SerializeForAPI()
	is.NoErr(err)
	is.Equal(payload, map[string]any{"description": nil})
}

func TestGetOfUnknownAttributeFails(t *testing.T) {
	is, schema := setupAttributesTest(t)

	_, err := schema.Empty().Get("colour")
	is.True(errors.Is(err, types.ErrMissingKey))
}

func TestMergeKeepsUntouchedAttributes(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a, _ := schema.New(map[string]any{"name": "Work", "description": "desk"})

	err := a.Merge(map[string]any{"name": "Home"})
	is.NoErr(err)

	is.Equal(a.String("name"), "Home")
	is.Equal(a.String("description"), "desk")
}

func TestFailedMergeLeavesInstanceUnchanged(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a, _ := schema.New(map[string]any{"name": "Work"})

	err := a.Merge(map[string]any{"name": "Home", "is_primary": "yes"})
	is.True(errors.Is(err, types.ErrCoercion))

	is.Equal(a.String("name"), "Work")
	is.True(!a.IsSet("is_primary"))
}

func TestCastFailuresNameTheAttribute(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a := schema.Empty()
	err := a.Merge(map[string]any{"name": "Work", "is_primary": 1, "tags": "x"})

	var ae *AttributeError
	is.True(errors.As(err, &ae))
	is.Equal(ae.Model, "calendar")
	is.Equal(ae.Name, "is_primary") // keys are cast in lexical order
	is.True(errors.Is(err, types.ErrCoercion))
}

func TestMergeWireSkipsUndeclaredKeys(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a := schema.Empty()
	err := a.MergeWire(context.Background(), map[string]any{
		"id":         "cal-1",
		"new_field":  "from a newer api",
		"created_at": float64(1600000000),
	})
	is.NoErr(err)

	is.Equal(a.String("id"), "cal-1")
	is.Equal(a.Time("created_at"), time.Unix(1600000000, 0).UTC())
	is.True(!schema.Has("new_field"))
}

func TestSerializeForAPIExcludesReadOnlyAttributes(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a, _ := schema.New(map[string]any{
		"id":         "cal-1",
		"name":       "Work",
		"created_at": int64(1600000000),
	})

	payload, err := a.SerializeForAPI("name", "created_at")
	is.NoErr(err)
	is.Equal(payload, map[string]any{"name": "Work"})

	dump, err := a.ToMap(false)
	is.NoErr(err)
	is.Equal(dump, map[string]any{"id": "cal-1", "name": "Work", "created_at": int64(1600000000)})
}

func TestSerializeForAPIOfUnknownKeyFails(t *testing.T) {
	is, schema := setupAttributesTest(t)

	_, err := schema.Empty().SerializeForAPI("colour")
	is.True(errors.Is(err, types.ErrMissingKey))
}

func TestSerializeAllForAPIIncludesDefaults(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a, _ := schema.New(map[string]any{
		"id":         "cal-1",
		"name":       "Work",
		"created_at": int64(1600000000),
	})

	payload, err := a.SerializeAllForAPI()
	is.NoErr(err)
	is.Equal(payload, map[string]any{"id": "cal-1", "name": "Work", "timezone": "UTC"})
}

func TestCollectionAttributesAreCastElementWise(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a, err := schema.New(map[string]any{"tags": []string{"a", "b"}})
	is.NoErr(err)
	is.Equal(a.Strings("tags"), []string{"a", "b"})

	_, err = schema.New(map[string]any{"tags": "a"})
	is.True(errors.Is(err, types.ErrCoercion)) // a scalar is not a list
}

func TestMarshalJSON(t *testing.T) {
	is, schema := setupAttributesTest(t)

	a, _ := schema.New(map[string]any{
		"name":       "Work",
		"is_primary": true,
		"tags":       []any{"x"},
		"created_at": "1600000000",
	})

	b, err := json.Marshal(a)
	is.NoErr(err)
	is.Equal(string(b), `{"created_at":1600000000,"is_primary":true,"name":"Work","tags":["x"]}`)
}

func setupAttributesTest(t *testing.T) (*is.I, *Schema) {
	is := is.New(t)

	schema := NewSchema("calendar", types.NewRegistry(),
		Attribute("id", types.String),
		Attribute("name", types.String),
		Attribute("description", types.String),
		Attribute("is_primary", types.Boolean),
		Attribute("timezone", types.String, Default("UTC")),
		Attribute("created_at", types.UnixTimestamp, ReadOnly()),
		HasNOf("tags", types.String),
	)

	return is, schema
}
