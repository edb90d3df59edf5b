package view

import (
	"context"
	"errors"
	"sync"

	"github.com/formdesk/formdesk/internal/client"
	"github.com/formdesk/formdesk/internal/model"
)

// API is the client surface the controller drives.
type API interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListForms(ctx context.Context) ([]model.Form, error)
	CreateForm(ctx context.Context, input model.FormInput) (*model.Form, string, error)
	UpdateForm(ctx context.Context, id int64, input model.FormInput) (*model.Form, string, error)
	DeleteForm(ctx context.Context, id int64) (string, error)
}

// Controller connects the pure reducer to the API client. All state
// changes flow through dispatch; suspension happens only at the
// network-call boundary.
type Controller struct {
	api API

	mu    sync.Mutex
	state State
}

// NewController creates a Controller in the initial idle state.
func NewController(api API) *Controller {
	return &Controller{
		api:   api,
		state: NewState(),
	}
}

// State returns a copy of the current view state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// dispatch reduces an event into the current state.
func (c *Controller) dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, ev)
	return c.state
}

// Load runs the two initial list fetches concurrently and blocks until
// both settle. One fetch failing neither cancels the other nor hides
// its result.
func (c *Controller) Load(ctx context.Context) State {
	c.dispatch(LoadStarted{})

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		users, err := c.api.ListUsers(ctx)
		if err != nil {
			c.dispatch(UsersFailed{Err: err.Error()})
			return
		}
		c.dispatch(UsersLoaded{Users: users})
	}()

	go func() {
		defer wg.Done()
		forms, err := c.api.ListForms(ctx)
		if err != nil {
			c.dispatch(FormsFailed{Err: err.Error()})
			return
		}
		c.dispatch(FormsLoaded{Forms: forms})
	}()

	wg.Wait()
	return c.State()
}

// SetBuffer replaces the input buffer.
func (c *Controller) SetBuffer(input model.FormInput) State {
	return c.dispatch(BufferChanged{Input: input})
}

// StartEdit switches to edit mode for the given listed row.
// It returns false if the ID is not in the current form list.
func (c *Controller) StartEdit(id int64) (State, bool) {
	c.mu.Lock()
	var target *model.Form
	for i := range c.state.Forms {
		if c.state.Forms[i].ID == id {
			target = &c.state.Forms[i]
			break
		}
	}
	c.mu.Unlock()

	if target == nil {
		return c.State(), false
	}
	return c.dispatch(EditStarted{Form: *target}), true
}

// CancelEdit discards buffer changes and returns to create mode
// without a network call.
func (c *Controller) CancelEdit() State {
	return c.dispatch(EditCancelled{})
}

// Submit sends the buffer as a create or, in edit mode, as an update of
// the edit target. On success the buffer is cleared and the form list
// re-fetched to reconcile; on validation failure the buffer is left
// untouched for correction.
func (c *Controller) Submit(ctx context.Context) State {
	c.mu.Lock()
	input := c.state.Buffer
	editing := c.state.Editing
	editID := c.state.EditID
	c.mu.Unlock()

	c.dispatch(SubmitStarted{})

	var message string
	var err error
	if editing {
		_, message, err = c.api.UpdateForm(ctx, editID, input)
	} else {
		_, message, err = c.api.CreateForm(ctx, input)
	}

	if err != nil {
		var verr *client.ValidationError
		if errors.As(err, &verr) {
			return c.dispatch(SubmitFailed{Details: verr.Details})
		}
		return c.dispatch(SubmitFailed{Err: err.Error()})
	}

	c.dispatch(SubmitSucceeded{Message: message})
	return c.refreshForms(ctx)
}

// Delete removes a form after the confirm callback approves it. There
// is no optimistic removal: the list is reconciled by a re-fetch.
func (c *Controller) Delete(ctx context.Context, id int64, confirm func(id int64) bool) State {
	if confirm == nil || !confirm(id) {
		return c.State()
	}

	message, err := c.api.DeleteForm(ctx, id)
	if err != nil {
		return c.dispatch(DeleteFailed{Err: err.Error()})
	}

	c.dispatch(DeleteSucceeded{Message: message})
	return c.refreshForms(ctx)
}

// refreshForms re-fetches the form list after a mutation.
func (c *Controller) refreshForms(ctx context.Context) State {
	forms, err := c.api.ListForms(ctx)
	if err != nil {
		return c.dispatch(FormsFailed{Err: err.Error()})
	}
	return c.dispatch(FormsLoaded{Forms: forms})
}
