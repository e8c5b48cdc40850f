package types

import (
	"sort"
	"sync"
)

const (
	Hash          string = "hash"
	UnixTimestamp string = "unix_timestamp"
	Date          string = "date"
	String        string = "string"
	Integer       string = "integer"
	Boolean       string = "boolean"
	Float         string = "float"
)

// ValueType casts wire values into their domain representation and back
type ValueType interface {
	Cast(value any) (any, error)
	Serialize(value any) (any, error)
}

// APISerializer is implemented by value types whose outbound representation
// differs from their default wire representation
type APISerializer interface {
	SerializeForAPI(value any) (any, error)
}

// SerializeForAPI uses the outbound representation of vt when it has one
func SerializeForAPI(vt ValueType, value any) (any, error) {
	if s, ok := vt.(APISerializer); ok {
		return s.SerializeForAPI(value)
	}
	return vt.Serialize(value)
}

// Registry maps type tags to value types. It is populated with the built in
// types on creation and extended with model backed types once those have been
// declared. Registration must complete before any model is constructed.
type Registry struct {
	mu    sync.RWMutex
	types map[string]ValueType
}

func NewRegistry() *Registry {
	r := &Registry{
		types: map[string]ValueType{},
	}

	r.Register(Hash, HashType{})
	r.Register(UnixTimestamp, UnixTimestampType{})
	r.Register(Date, DateType{})
	r.Register(String, StringType{})
	r.Register(Integer, IntegerType{})
	r.Register(Boolean, BooleanType{})
	r.Register(Float, FloatType{})

	return r
}

// Register adds or replaces the value type for a tag
func (r *Registry) Register(tag string, vt ValueType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[tag] = vt
}

func (r *Registry) Lookup(tag string) (ValueType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vt, ok := r.types[tag]
	if !ok {
		return nil, NewMissingKeyError(tag)
	}

	return vt, nil
}

func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.types))
	for tag := range r.types {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags
}
