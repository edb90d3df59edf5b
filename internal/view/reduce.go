package view

import (
	"strings"

	"github.com/formdesk/formdesk/internal/model"
)

// Reduce applies an event to the state and returns the next state.
// It is a pure function: no I/O, no mutation of the input.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case LoadStarted:
		s.Phase = PhaseLoading
		s.LoadFailed = false
		s.Status = ""
		s.pendingFetches = 2

	case UsersLoaded:
		s.Users = ev.Users
		s = fetchSettled(s, "")

	case UsersFailed:
		s.LoadFailed = true
		s = fetchSettled(s, "Failed to load users: "+ev.Err)

	case FormsLoaded:
		s.Forms = ev.Forms
		if s.Phase == PhaseLoading {
			s = fetchSettled(s, "")
		}

	case FormsFailed:
		if s.Phase == PhaseLoading {
			s.LoadFailed = true
			s = fetchSettled(s, "Failed to load forms: "+ev.Err)
		} else {
			s.Status = "Failed to load forms: " + ev.Err
		}

	case BufferChanged:
		s.Buffer = ev.Input

	case EditStarted:
		s.Editing = true
		s.EditID = ev.Form.ID
		s.Buffer = model.FormInput{
			Name:    ev.Form.Name,
			Email:   ev.Form.Email,
			Message: ev.Form.Message,
		}
		s.Status = ""

	case EditCancelled:
		s.Editing = false
		s.EditID = 0
		s.Buffer = model.FormInput{}

	case SubmitStarted:
		s.Submitting = true
		s.Status = "Submitting..."

	case SubmitSucceeded:
		s.Submitting = false
		s.Editing = false
		s.EditID = 0
		s.Buffer = model.FormInput{}
		s.Status = ev.Message

	case SubmitFailed:
		// Buffer is left untouched so the user can correct it
		s.Submitting = false
		if len(ev.Details) > 0 {
			s.Status = strings.Join(ev.Details, "; ")
		} else {
			s.Status = ev.Err
		}

	case DeleteSucceeded:
		s.Status = ev.Message

	case DeleteFailed:
		s.Status = ev.Err
	}

	return s
}

// fetchSettled accounts for one completed initial fetch and decides the
// aggregate phase once both have settled. One failing fetch flags the
// state but still shows the other's data; only a total failure is a
// hard error phase.
func fetchSettled(s State, failure string) State {
	if s.pendingFetches > 0 {
		s.pendingFetches--
	}
	if failure != "" {
		if s.Status != "" {
			s.Status += "; " + failure
		} else {
			s.Status = failure
		}
	}
	if s.pendingFetches == 0 {
		if s.LoadFailed && s.Users == nil && s.Forms == nil {
			s.Phase = PhaseError
		} else {
			s.Phase = PhaseReady
		}
	}
	return s
}
