package domain

import "fmt"

// ConfigurationError reports a bareme that is missing a required year,
// category or bracket table. It is always fatal: the caller must never
// receive a result computed from a guessed or defaulted rate.
type ConfigurationError struct {
	Year   int
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Year != 0 {
		return fmt.Sprintf("bareme %d: %s: %s", e.Year, e.Field, e.Reason)
	}
	return fmt.Sprintf("bareme: %s: %s", e.Field, e.Reason)
}

// ValidationError reports a structurally invalid fiscal profile. It is
// raised before any computation begins and names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid profile: %s: %s", e.Field, e.Reason)
}

// DomainInvariantError reports an internally impossible state reached
// during computation (a defect, not bad input). It is surfaced rather
// than clamped silently.
type DomainInvariantError struct {
	Op     string
	Reason string
}

func (e *DomainInvariantError) Error() string {
	return fmt.Sprintf("domain invariant violated in %s: %s", e.Op, e.Reason)
}
