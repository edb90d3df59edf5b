package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/formdesk/formdesk/internal/client"
	"github.com/formdesk/formdesk/internal/model"
)

// fakeAPI scripts the client surface. Zero-value fields mean success
// with the canned data; error fields force that call to fail.
type fakeAPI struct {
	mu sync.Mutex

	users []model.User
	forms []model.Form

	usersErr  error
	formsErr  error
	createErr error
	updateErr error
	deleteErr error

	createdInputs []model.FormInput
	updatedID     int64
	updatedInput  model.FormInput
	deletedID     int64
	listFormCalls int
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func (f *fakeAPI) ListForms(ctx context.Context) ([]model.Form, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFormCalls++
	if f.formsErr != nil {
		return nil, f.formsErr
	}
	return f.forms, nil
}

func (f *fakeAPI) CreateForm(ctx context.Context, input model.FormInput) (*model.Form, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, "", f.createErr
	}
	f.createdInputs = append(f.createdInputs, input)
	created := model.Form{ID: 99, Name: input.Name, Email: input.Email, Message: input.Message, CreatedAt: time.Now()}
	f.forms = append([]model.Form{created}, f.forms...)
	return &created, "Form submitted successfully", nil
}

func (f *fakeAPI) UpdateForm(ctx context.Context, id int64, input model.FormInput) (*model.Form, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, "", f.updateErr
	}
	f.updatedID = id
	f.updatedInput = input
	return &model.Form{ID: id, Name: input.Name, Email: input.Email, Message: input.Message}, "Form updated successfully", nil
}

func (f *fakeAPI) DeleteForm(ctx context.Context, id int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	f.deletedID = id
	return "Form deleted successfully", nil
}

func TestController_Load(t *testing.T) {
	api := &fakeAPI{users: sampleUsers(), forms: sampleForms()}
	c := NewController(api)

	s := c.Load(context.Background())

	if s.Phase != PhaseReady {
		t.Fatalf("phase = %q, want %q", s.Phase, PhaseReady)
	}
	if len(s.Users) != 1 || len(s.Forms) != 2 {
		t.Errorf("users=%d forms=%d, want 1 and 2", len(s.Users), len(s.Forms))
	}
}

func TestController_LoadPartialFailure(t *testing.T) {
	api := &fakeAPI{usersErr: errors.New("users unavailable"), forms: sampleForms()}
	c := NewController(api)

	s := c.Load(context.Background())

	if s.Phase != PhaseReady {
		t.Fatalf("phase = %q, want %q", s.Phase, PhaseReady)
	}
	if !s.LoadFailed {
		t.Error("LoadFailed not set")
	}
	if len(s.Forms) != 2 {
		t.Errorf("forms = %d, want 2", len(s.Forms))
	}
}

func TestController_LoadTotalFailure(t *testing.T) {
	api := &fakeAPI{usersErr: errors.New("down"), formsErr: errors.New("down")}
	c := NewController(api)

	s := c.Load(context.Background())
	if s.Phase != PhaseError {
		t.Fatalf("phase = %q, want %q", s.Phase, PhaseError)
	}
}

func TestController_SubmitCreates(t *testing.T) {
	api := &fakeAPI{forms: sampleForms()}
	c := NewController(api)
	c.Load(context.Background())

	input := model.FormInput{Name: "Cal", Email: "c@x.com", Message: "hello"}
	c.SetBuffer(input)
	s := c.Submit(context.Background())

	if len(api.createdInputs) != 1 || api.createdInputs[0] != input {
		t.Fatalf("created = %+v, want one call with %+v", api.createdInputs, input)
	}
	if s.Buffer != (model.FormInput{}) {
		t.Errorf("buffer = %+v, want cleared", s.Buffer)
	}
	if s.Status != "Form submitted successfully" {
		t.Errorf("status = %q", s.Status)
	}
	// one initial list + one reconcile re-fetch
	if api.listFormCalls != 2 {
		t.Errorf("ListForms calls = %d, want 2", api.listFormCalls)
	}
	if len(s.Forms) != 3 {
		t.Errorf("forms = %d after reconcile, want 3", len(s.Forms))
	}
}

func TestController_SubmitUpdatesEditTarget(t *testing.T) {
	api := &fakeAPI{forms: sampleForms()}
	c := NewController(api)
	c.Load(context.Background())

	if _, ok := c.StartEdit(2); !ok {
		t.Fatal("StartEdit(2) = false, want true")
	}
	edited := model.FormInput{Name: "Bea", Email: "b@x.com", Message: "edited"}
	c.SetBuffer(edited)
	s := c.Submit(context.Background())

	if api.updatedID != 2 {
		t.Errorf("updated id = %d, want 2", api.updatedID)
	}
	if api.updatedInput != edited {
		t.Errorf("updated input = %+v, want %+v", api.updatedInput, edited)
	}
	if s.Editing {
		t.Error("still in edit mode after a successful update")
	}
	if s.Status != "Form updated successfully" {
		t.Errorf("status = %q", s.Status)
	}
}

func TestController_StartEditUnknownID(t *testing.T) {
	api := &fakeAPI{forms: sampleForms()}
	c := NewController(api)
	c.Load(context.Background())

	s, ok := c.StartEdit(777)
	if ok {
		t.Fatal("StartEdit(777) = true for an unlisted row")
	}
	if s.Editing {
		t.Error("edit mode entered for an unlisted row")
	}
}

func TestController_SubmitValidationFailureKeepsBuffer(t *testing.T) {
	api := &fakeAPI{
		forms:     sampleForms(),
		createErr: &client.ValidationError{Details: []string{"email is not a valid email address"}},
	}
	c := NewController(api)
	c.Load(context.Background())

	input := model.FormInput{Name: "Cal", Email: "nope", Message: "hello"}
	c.SetBuffer(input)
	s := c.Submit(context.Background())

	if s.Buffer != input {
		t.Fatalf("buffer = %+v, want kept as %+v", s.Buffer, input)
	}
	if s.Status != "email is not a valid email address" {
		t.Errorf("status = %q", s.Status)
	}
	if s.Submitting {
		t.Error("Submitting still set")
	}
}

func TestController_DeleteConfirmed(t *testing.T) {
	api := &fakeAPI{forms: sampleForms()}
	c := NewController(api)
	c.Load(context.Background())

	s := c.Delete(context.Background(), 1, func(id int64) bool { return true })

	if api.deletedID != 1 {
		t.Errorf("deleted id = %d, want 1", api.deletedID)
	}
	if s.Status != "Form deleted successfully" {
		t.Errorf("status = %q", s.Status)
	}
	if api.listFormCalls != 2 {
		t.Errorf("ListForms calls = %d, want initial load plus reconcile", api.listFormCalls)
	}
}

func TestController_DeleteDeclined(t *testing.T) {
	api := &fakeAPI{forms: sampleForms()}
	c := NewController(api)
	c.Load(context.Background())

	c.Delete(context.Background(), 1, func(id int64) bool { return false })
	if api.deletedID != 0 {
		t.Errorf("DeleteForm called with id %d, want no call", api.deletedID)
	}

	c.Delete(context.Background(), 1, nil)
	if api.deletedID != 0 {
		t.Error("DeleteForm called with a nil confirm callback")
	}
}

func TestController_DeleteFailure(t *testing.T) {
	api := &fakeAPI{forms: sampleForms(), deleteErr: errors.New("Form not found")}
	c := NewController(api)
	c.Load(context.Background())

	s := c.Delete(context.Background(), 777, func(id int64) bool { return true })
	if s.Status != "Form not found" {
		t.Errorf("status = %q", s.Status)
	}
	if len(s.Forms) != 2 {
		t.Error("form list changed by a failed delete")
	}
}
