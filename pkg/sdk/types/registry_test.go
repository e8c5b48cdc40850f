package types

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

type upperType struct {
	StringType
}

func TestLookupOfUnregisteredTagFails(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()

	_, err := r.Lookup("event")

	is.True(errors.Is(err, ErrMissingKey))

	var mke *MissingKeyError
	is.True(errors.As(err, &mke))
	is.Equal(mke.Key, "event")
}

func TestLookupReturnsTheRegisteredInstance(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()

	vt := &upperType{}
	r.Register("upper", vt)

	found, err := r.Lookup("upper")
	is.NoErr(err)
	is.True(found.(*upperType) == vt) // should be the exact same instance
}

func TestRegisterOverwritesExistingTag(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()

	vt := &upperType{}
	r.Register(String, vt)

	found, err := r.Lookup(String)
	is.NoErr(err)
	is.True(found.(*upperType) == vt)
}

func TestRegistriesDoNotShareState(t *testing.T) {
	is := is.New(t)

	a := NewRegistry()
	b := NewRegistry()

	a.Register("only_in_a", &upperType{})

	_, err := b.Lookup("only_in_a")
	is.True(errors.Is(err, ErrMissingKey))
	is.Equal(len(b.Tags()), 7) // only the built in types
}

func TestSerializeForAPIFallsBackToSerialize(t *testing.T) {
	is := is.New(t)

	v, err := SerializeForAPI(IntegerType{}, int64(5))
	is.NoErr(err)
	is.Equal(v, int64(5))
}
