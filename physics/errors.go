package physics

import "fmt"

// ConfigurationError reports a malformed body or environment. It is a
// programmer error and is returned instead of letting NaN or Inf reach the
// simulation.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("physics: invalid %s: %s", e.Field, e.Reason)
}

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
