package matrix

import "fmt"

// ConfigurationError reports a ParameterSource whose output violates the
// structural contract. It is only produced at Helper construction; a helper is
// never usable in a partially-validated state.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid test creation parameters: %s", e.Reason)
}

func newConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// ExpansionError reports a bunch that cannot be expanded into concrete
// records. ExpandMatrix aborts on the first such bunch; no partial matrix is
// returned.
type ExpansionError struct {
	// Bunch is the zero-based index of the offending bunch.
	Bunch  int
	Reason string
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("test bunch %d: %s", e.Bunch, e.Reason)
}

func newExpansionError(bunch int, format string, args ...interface{}) error {
	return &ExpansionError{Bunch: bunch, Reason: fmt.Sprintf(format, args...)}
}
