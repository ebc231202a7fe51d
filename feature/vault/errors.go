package vault

import "fmt"

// ConfigError reports an invalid entity configuration. The engine turns it
// into a FAILED result row instead of aborting the run.
type ConfigError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid entity %s: field %s: %s", e.Entity, e.Field, e.Reason)
}

// SchemaMismatchError reports that the two sides of a set-difference do not
// project the same number of columns, which would make EXCEPT fail or, worse,
// silently compare the wrong things.
type SchemaMismatchError struct {
	Entity         string
	Transition     string
	UpstreamCols   int
	DownstreamCols int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch on %s %s: upstream projects %d columns, downstream %d",
		e.Entity, e.Transition, e.UpstreamCols, e.DownstreamCols)
}
