package attributes

import "fmt"

// AttributeError names the attribute whose value could not be cast
type AttributeError struct {
	Model string
	Name  string
	Err   error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Model, e.Name, e.Err.Error())
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}
