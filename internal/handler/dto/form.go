// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/formdesk/formdesk/internal/model"

// FormRequest represents the request body for creating or updating a form.
type FormRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Input converts the request body to the service input shape.
func (r FormRequest) Input() model.FormInput {
	return model.FormInput{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
}

// SuccessResponse is the envelope returned by mutating operations.
// Data is present for create and update, absent for delete.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *model.Form `json:"data,omitempty"`
}

// ErrorResponse represents an API error.
// Details enumerates violated constraints for validation failures
// and is empty for not-found and server errors.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
