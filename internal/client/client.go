// Package client provides a typed HTTP client for the Formdesk API.
//
// Failures are reported as tagged error types so callers can tell
// caller-fixable validation problems apart from missing rows and from
// infrastructure failures: *ValidationError, ErrNotFound and *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/formdesk/formdesk/internal/handler/dto"
	"github.com/formdesk/formdesk/internal/model"
)

// ErrNotFound is returned when the referenced form does not exist.
var ErrNotFound = errors.New("form not found")

// ValidationError carries the server's enumerated list of violated
// constraints from a 400 response.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// APIError represents a non-validation error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client calls the Formdesk REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL.
// Pass nil to use http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// ListUsers fetches all users.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListForms fetches all form submissions, newest first.
func (c *Client) ListForms(ctx context.Context) ([]model.Form, error) {
	var forms []model.Form
	if err := c.get(ctx, "/forms", &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// GetForm fetches a single form by ID.
func (c *Client) GetForm(ctx context.Context, id int64) (*model.Form, error) {
	var form model.Form
	if err := c.get(ctx, "/forms/"+strconv.FormatInt(id, 10), &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// CreateForm submits a new form. On success it returns the stored row
// and the server's status message.
func (c *Client) CreateForm(ctx context.Context, input model.FormInput) (*model.Form, string, error) {
	return c.mutate(ctx, http.MethodPost, "/submit-form", &input)
}

// UpdateForm replaces the mutable fields of an existing form.
func (c *Client) UpdateForm(ctx context.Context, id int64, input model.FormInput) (*model.Form, string, error) {
	return c.mutate(ctx, http.MethodPut, "/forms/"+strconv.FormatInt(id, 10), &input)
}

// DeleteForm permanently removes a form. It returns the server's
// status message.
func (c *Client) DeleteForm(ctx context.Context, id int64) (string, error) {
	_, msg, err := c.mutate(ctx, http.MethodDelete, "/forms/"+strconv.FormatInt(id, 10), nil)
	return msg, err
}

// get issues a GET request and decodes the 200 body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// mutate issues a mutating request and decodes the success envelope.
func (c *Client) mutate(ctx context.Context, method, path string, input *model.FormInput) (*model.Form, string, error) {
	var body *bytes.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", decodeError(resp)
	}

	var envelope dto.SuccessResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !envelope.Success {
		return nil, "", &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	return envelope.Data, envelope.Message, nil
}

// decodeError converts a non-200 response into a tagged error.
func decodeError(resp *http.Response) error {
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusBadRequest && len(body.Details) > 0:
		return &ValidationError{Details: body.Details}
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		msg := body.Error
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
}
