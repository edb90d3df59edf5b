// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/formdesk/formdesk/internal/model"
	"github.com/formdesk/formdesk/internal/repository"
)

// ErrFormNotFound is returned when a form ID references no existing row.
var ErrFormNotFound = errors.New("form not found")

// emailRegex checks email shape: something@something.tld, no whitespace.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError reports every constraint a submission violated.
// Callers can fix these; they map to a 400 response with the details list.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// FormService handles form submission business logic.
type FormService struct {
	repo *repository.Repository
}

// NewFormService creates a new FormService.
func NewFormService(repo *repository.Repository) *FormService {
	return &FormService{repo: repo}
}

// ValidateInput checks the caller-supplied fields and returns a
// *ValidationError enumerating every violated constraint, or nil.
func ValidateInput(input model.FormInput) *ValidationError {
	var details []string

	if strings.TrimSpace(input.Name) == "" {
		details = append(details, "name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		details = append(details, "email is required")
	} else if !emailRegex.MatchString(input.Email) {
		details = append(details, "email is not a valid email address")
	}
	if strings.TrimSpace(input.Message) == "" {
		details = append(details, "message is required")
	}

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

// Create validates and stores a new form submission.
// No idempotency: duplicate submissions produce duplicate rows.
func (s *FormService) Create(ctx context.Context, input model.FormInput) (*model.Form, error) {
	if verr := ValidateInput(input); verr != nil {
		return nil, verr
	}

	form, err := s.repo.CreateForm(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	return form, nil
}

// Get retrieves a form by ID.
func (s *FormService) Get(ctx context.Context, id int64) (*model.Form, error) {
	form, err := s.repo.GetFormByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	return form, nil
}

// List retrieves all form submissions, newest first.
func (s *FormService) List(ctx context.Context) ([]*model.Form, error) {
	return s.repo.ListForms(ctx)
}

// Update validates new field values and applies them to an existing form.
// ID and created_at are never modified. Last write wins; there is no
// version check between concurrent updates.
func (s *FormService) Update(ctx context.Context, id int64, input model.FormInput) (*model.Form, error) {
	if verr := ValidateInput(input); verr != nil {
		return nil, verr
	}

	form, err := s.repo.UpdateForm(ctx, id, input)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	return form, nil
}

// Delete permanently removes a form submission.
func (s *FormService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteForm(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return ErrFormNotFound
		}
		return fmt.Errorf("failed to delete form: %w", err)
	}

	return nil
}
