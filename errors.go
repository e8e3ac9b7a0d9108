package fsm

import "fmt"

// ErrInvalidConfiguration is returned when a machine is constructed with an
// unusable configuration, such as an empty state set.
type ErrInvalidConfiguration struct {
	Reason string
}

func (e *ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("fsm: invalid configuration: %s", e.Reason)
}

// ErrUnknownState is raised when a state argument to a registration method or
// to Begin is not part of the configured state set. The set is fixed at
// construction time and never mutated afterwards.
type ErrUnknownState struct {
	State any
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("fsm: unknown state %v: not part of the configured state set", e.State)
}

// ErrInvalidArgument is raised when a required registration argument is empty
// or nil, such as an empty command or a nil handler, guard or transition.
type ErrInvalidArgument struct {
	Name string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("fsm: invalid argument: %s must not be empty or nil", e.Name)
}
