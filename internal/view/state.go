// Package view implements the client view state as an immutable state
// struct updated by a pure reducer over typed events. Network calls live
// in the Controller; the reducer itself never blocks and never fails.
package view

import "github.com/formdesk/formdesk/internal/model"

// Phase is the aggregate loading phase of the view.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// State is the complete view state. It is treated as immutable:
// the reducer returns a modified copy and never mutates its input.
// Slices held by the state are replaced wholesale, never appended to.
type State struct {
	Phase Phase

	// Server data, reconciled by re-fetching after every mutation.
	Users []model.User
	Forms []model.Form

	// Buffer holds the form inputs currently being edited.
	Buffer model.FormInput

	// Editing marks edit mode; EditID is the target row.
	// When false the buffer submits as a new form.
	Editing bool
	EditID  int64

	// Submitting is set between submit start and completion.
	Submitting bool

	// LoadFailed marks that at least one of the initial fetches failed.
	// Data from the fetch that succeeded is still displayed.
	LoadFailed bool

	// Status is the visible status/error message. Empty means no message.
	Status string

	// pendingFetches counts outstanding initial fetches; the view leaves
	// the loading phase only when it reaches zero.
	pendingFetches int
}

// NewState returns the initial idle state.
func NewState() State {
	return State{Phase: PhaseIdle}
}

// Event is a view event consumed by Reduce.
type Event interface{ isEvent() }

// LoadStarted begins the initial load: both list fetches are in flight.
type LoadStarted struct{}

// UsersLoaded delivers the users list fetch result.
type UsersLoaded struct{ Users []model.User }

// UsersFailed reports the users list fetch failure.
type UsersFailed struct{ Err string }

// FormsLoaded delivers the forms list. Also used when the list is
// re-fetched after a mutation.
type FormsLoaded struct{ Forms []model.Form }

// FormsFailed reports the forms list fetch failure.
type FormsFailed struct{ Err string }

// BufferChanged replaces the input buffer.
type BufferChanged struct{ Input model.FormInput }

// EditStarted switches to edit mode, pre-populating the buffer from the
// target row's current values.
type EditStarted struct{ Form model.Form }

// EditCancelled discards buffer changes and returns to create mode.
type EditCancelled struct{}

// SubmitStarted marks a create or update request in flight.
type SubmitStarted struct{}

// SubmitSucceeded reports a successful create or update.
type SubmitSucceeded struct{ Message string }

// SubmitFailed reports a failed create or update. Details carries the
// server's enumerated constraint violations when it was a validation
// failure; Err carries the message otherwise.
type SubmitFailed struct {
	Details []string
	Err     string
}

// DeleteSucceeded reports a successful delete. The row is not removed
// locally; the list is reconciled by a re-fetch.
type DeleteSucceeded struct{ Message string }

// DeleteFailed reports a failed delete.
type DeleteFailed struct{ Err string }

func (LoadStarted) isEvent()     {}
func (UsersLoaded) isEvent()     {}
func (UsersFailed) isEvent()     {}
func (FormsLoaded) isEvent()     {}
func (FormsFailed) isEvent()     {}
func (BufferChanged) isEvent()   {}
func (EditStarted) isEvent()     {}
func (EditCancelled) isEvent()   {}
func (SubmitStarted) isEvent()   {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}
func (DeleteSucceeded) isEvent() {}
func (DeleteFailed) isEvent()    {}
