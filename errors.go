package fluidtype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is matched by every configuration error returned from Generate
var ErrConfig = errors.New("invalid fluidtype config")

// NegativeStepError is returned when MinStep or MaxStep is negative
type NegativeStepError struct {
	MinStep int
	MaxStep int
}

func (e *NegativeStepError) Error() string {
	return fmt.Sprintf("negative step count: minStep or maxStep cannot be negative values (minStep=%d, maxStep=%d)",
		e.MinStep, e.MaxStep)
}

// Is makes the error match ErrConfig
func (e *NegativeStepError) Is(target error) bool {
	return target == ErrConfig
}

// InsufficientSuffixesError is returned when value suffixes cannot name every step
type InsufficientSuffixesError struct {
	MinStep  int
	MaxStep  int
	Suffixes []string
}

// Required is the number of suffixes needed
func (e *InsufficientSuffixesError) Required() int {
	return e.MinStep + e.MaxStep + 1
}

func (e *InsufficientSuffixesError) Error() string {
	var b strings.Builder
	b.WriteString("insufficient suffixes passed\n")
	fmt.Fprintf(&b, "Number of steps: %d(minStep) + %d(maxStep) + 1(baseStep) = %d\n",
		e.MinStep, e.MaxStep, e.Required())
	fmt.Fprintf(&b, "Number of suffixes: %d\n", len(e.Suffixes))
	fmt.Fprintf(&b, "Current suffix list: %s", strings.Join(e.Suffixes, ","))
	return b.String()
}

// Is makes the error match ErrConfig
func (e *InsufficientSuffixesError) Is(target error) bool {
	return target == ErrConfig
}

// InvalidOptionError reports any other out-of-range option
type InvalidOptionError struct {
	Option string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Option, e.Reason)
}

// Is makes the error match ErrConfig
func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrConfig
}
