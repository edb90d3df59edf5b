package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/formdesk/formdesk/internal/handler/dto"
	"github.com/formdesk/formdesk/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestClient_ListForms(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/forms" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, []model.Form{
			{ID: 2, Name: "Bea", Email: "b@x.com", Message: "later", CreatedAt: time.Now().UTC()},
			{ID: 1, Name: "Ann", Email: "a@x.com", Message: "first", CreatedAt: time.Now().UTC().Add(-time.Hour)},
		})
	})

	forms, err := c.ListForms(context.Background())
	if err != nil {
		t.Fatalf("ListForms() error = %v", err)
	}
	if len(forms) != 2 || forms[0].ID != 2 {
		t.Errorf("forms = %+v, want 2 rows newest first", forms)
	}
}

func TestClient_ListUsers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("path = %s, want /users", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, []model.User{{ID: 1, Name: "Admin", Email: "admin@formdesk.local"}})
	})

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 1 || users[0].Name != "Admin" {
		t.Errorf("users = %+v", users)
	}
}

func TestClient_CreateForm(t *testing.T) {
	created := model.Form{ID: 7, Name: "Ann", Email: "a@x.com", Message: "hi", CreatedAt: time.Now().UTC()}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submit-form" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var input model.FormInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if input.Name != "Ann" {
			t.Errorf("input = %+v", input)
		}
		writeJSON(t, w, http.StatusOK, dto.SuccessResponse{
			Success: true,
			Message: "Form submitted successfully",
			Data:    &created,
		})
	})

	form, msg, err := c.CreateForm(context.Background(), model.FormInput{Name: "Ann", Email: "a@x.com", Message: "hi"})
	if err != nil {
		t.Fatalf("CreateForm() error = %v", err)
	}
	if form.ID != 7 {
		t.Errorf("form.ID = %d, want 7", form.ID)
	}
	if msg != "Form submitted successfully" {
		t.Errorf("message = %q", msg)
	}
}

func TestClient_CreateForm_ValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Details: []string{"name is required", "email is not a valid email address"},
		})
	})

	_, _, err := c.CreateForm(context.Background(), model.FormInput{Email: "nope", Message: "hi"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v (%T), want *ValidationError", err, err)
	}
	if len(verr.Details) != 2 || verr.Details[0] != "name is required" {
		t.Errorf("details = %v", verr.Details)
	}
}

func TestClient_GetForm_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, dto.ErrorResponse{Error: "Form not found"})
	})

	_, err := c.GetForm(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	})

	_, err := c.ListForms(context.Background())

	var aerr *APIError
	if !errors.As(err, &aerr) {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	if aerr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", aerr.StatusCode)
	}
	if aerr.Message != "Internal server error" {
		t.Errorf("message = %q", aerr.Message)
	}
}

func TestClient_ErrorWithoutJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.ListForms(context.Background())

	var aerr *APIError
	if !errors.As(err, &aerr) {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	if aerr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", aerr.StatusCode)
	}
}

func TestClient_UpdateForm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/forms/3" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, dto.SuccessResponse{
			Success: true,
			Message: "Form updated successfully",
			Data:    &model.Form{ID: 3, Name: "Bea", Email: "b@x.com", Message: "edited"},
		})
	})

	form, msg, err := c.UpdateForm(context.Background(), 3, model.FormInput{Name: "Bea", Email: "b@x.com", Message: "edited"})
	if err != nil {
		t.Fatalf("UpdateForm() error = %v", err)
	}
	if form.Message != "edited" || msg != "Form updated successfully" {
		t.Errorf("form = %+v, msg = %q", form, msg)
	}
}

func TestClient_DeleteForm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/forms/3" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, dto.SuccessResponse{
			Success: true,
			Message: "Form deleted successfully",
		})
	})

	msg, err := c.DeleteForm(context.Background(), 3)
	if err != nil {
		t.Fatalf("DeleteForm() error = %v", err)
	}
	if msg != "Form deleted successfully" {
		t.Errorf("message = %q", msg)
	}
}

func TestClient_TrimsBaseURLSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(t, w, http.StatusOK, []model.User{})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/", srv.Client())
	if _, err := c.ListUsers(context.Background()); err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if gotPath != "/users" {
		t.Errorf("path = %q, want /users", gotPath)
	}
}
