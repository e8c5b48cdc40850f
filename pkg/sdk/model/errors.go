package model

import (
	"fmt"
)

var ErrModelNotCreatable = fmt.Errorf("model not creatable")
var ErrModelNotShowable = fmt.Errorf("model not showable")
var ErrModelNotListable = fmt.Errorf("model not listable")
var ErrModelNotFilterable = fmt.Errorf("model not filterable")
var ErrModelNotSearchable = fmt.Errorf("model not searchable")
var ErrModelNotUpdatable = fmt.Errorf("model not updatable")
var ErrModelNotDestroyable = fmt.Errorf("model not destroyable")
var ErrModelNotIDListable = fmt.Errorf("model not id listable")
var ErrModelNotCountable = fmt.Errorf("model not countable")

var ErrModelMissingField = fmt.Errorf("model missing field")
var ErrModelDestroyed = fmt.Errorf("model has been destroyed")
var ErrModelNotPersisted = fmt.Errorf("model has not been persisted")

var capabilityErrors = map[Operation]error{
	OpCreate:  ErrModelNotCreatable,
	OpShow:    ErrModelNotShowable,
	OpList:    ErrModelNotListable,
	OpFilter:  ErrModelNotFilterable,
	OpSearch:  ErrModelNotSearchable,
	OpUpdate:  ErrModelNotUpdatable,
	OpDestroy: ErrModelNotDestroyable,
	OpListIDs: ErrModelNotIDListable,
	OpCount:   ErrModelNotCountable,
}

// CapabilityError is returned when an operation is attempted on a model kind
// that does not support it. Subject is the instance or kind it was attempted on.
type CapabilityError struct {
	Op      Operation
	Kind    string
	Subject any
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s is not %s", e.Kind, e.Op)
}

func (e *CapabilityError) Is(target error) bool {
	return target == capabilityErrors[e.Op]
}

// MissingFieldError is returned by updates with data that could not be
// assigned to the model
type MissingFieldError struct {
	Key   string
	Model string
	cause error
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s has no assignable field %q: %s", e.Model, e.Key, e.cause.Error())
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrModelMissingField }

func (e *MissingFieldError) Unwrap() error {
	return e.cause
}
