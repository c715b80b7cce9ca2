package resource

import "fmt"

// ConfigError reports an invalid Descriptor. It is returned at binding time,
// before any remote call can be made.
type ConfigError struct {
	// Field is the descriptor field at fault.
	Field string
	// Value is the rejected value.
	Value any
	// Reason describes the expectation.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("resource descriptor: %s '%s', given: %v", e.Reason, e.Field, e.Value)
}
