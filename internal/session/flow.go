// Package session tracks where one user flow (calculate, save, share) is,
// as a single explicit state instead of a handful of loading flags.
package session

import (
	"errors"
	"fmt"
)

// State is one step of a user flow.
type State string

const (
	Idle    State = "idle"
	Loading State = "loading"
	Ready   State = "ready"
	Saving  State = "saving"
	Error   State = "error"
)

// ErrInvalidTransition is returned when a flow is asked to jump between
// states that are not connected.
var ErrInvalidTransition = errors.New("invalid state transition")

var transitions = map[State][]State{
	Idle:    {Loading},
	Loading: {Ready, Error},
	Ready:   {Loading, Saving},
	Saving:  {Ready, Error},
	Error:   {Loading, Saving},
}

// Snapshot is the externally visible form of a flow.
type Snapshot struct {
	State  State  `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// Flow is a small state machine. The zero value is an idle flow. A Flow is
// owned by one request and is not safe for concurrent use.
type Flow struct {
	state  State
	reason string
}

// New returns an idle flow.
func New() *Flow { return &Flow{state: Idle} }

// State reports the current state.
func (f *Flow) State() State {
	if f.state == "" {
		return Idle
	}
	return f.state
}

// Reason is the failure reason while in the Error state.
func (f *Flow) Reason() string { return f.reason }

func (f *Flow) to(next State, reason string) error {
	cur := f.State()
	for _, allowed := range transitions[cur] {
		if allowed == next {
			f.state = next
			f.reason = reason
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, next)
}

// Load marks the start of a catalog read or calculation.
func (f *Flow) Load() error { return f.to(Loading, "") }

// Loaded marks the flow ready for display, saving or sharing.
func (f *Flow) Loaded() error { return f.to(Ready, "") }

// Save marks the start of a persistence call.
func (f *Flow) Save() error { return f.to(Saving, "") }

// Saved returns the flow to Ready after a successful save.
func (f *Flow) Saved() error { return f.to(Ready, "") }

// Fail moves the flow to Error, keeping err's message as the reason.
func (f *Flow) Fail(err error) error {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return f.to(Error, reason)
}

// Snapshot returns the current state for API responses.
func (f *Flow) Snapshot() Snapshot {
	return Snapshot{State: f.State(), Reason: f.reason}
}
