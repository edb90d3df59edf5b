package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/formdesk/formdesk/internal/handler/dto"
	"github.com/formdesk/formdesk/internal/model"
	"github.com/formdesk/formdesk/internal/service"
)

// FormService defines the form operations the handler depends on.
type FormService interface {
	Create(ctx context.Context, input model.FormInput) (*model.Form, error)
	Get(ctx context.Context, id int64) (*model.Form, error)
	List(ctx context.Context) ([]*model.Form, error)
	Update(ctx context.Context, id int64, input model.FormInput) (*model.Form, error)
	Delete(ctx context.Context, id int64) error
}

// FormHandler handles HTTP requests for form operations.
type FormHandler struct {
	svc    FormService
	logger *slog.Logger
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(svc FormService, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /submit-form.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	form, err := h.svc.Create(r.Context(), req.Input())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("form_created", "form_id", form.ID)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Form submitted successfully",
		Data:    form,
	})
}

// List handles GET /forms.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	// An empty list marshals as [], not null
	if forms == nil {
		forms = []*model.Form{}
	}
	writeJSON(w, http.StatusOK, forms)
}

// Get handles GET /forms/{id}.
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.formID(w, r)
	if !ok {
		return
	}

	form, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Update handles PUT /forms/{id}.
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.formID(w, r)
	if !ok {
		return
	}

	var req dto.FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	form, err := h.svc.Update(r.Context(), id, req.Input())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("form_updated", "form_id", form.ID)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Form updated successfully",
		Data:    form,
	})
}

// Delete handles DELETE /forms/{id}.
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.formID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("form_deleted", "form_id", id)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Form deleted successfully",
	})
}

// formID parses the {id} URL parameter. On failure it writes a 400
// response and returns ok=false.
func (h *FormHandler) formID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid form ID"})
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors to HTTP responses.
// Validation failures carry the enumerated constraint list; store
// failures are logged and reported with an opaque message only.
func (h *FormHandler) handleServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Details: verr.Details,
		})
	case errors.Is(err, service.ErrFormNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Form not found"})
	default:
		h.logger.Error("internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
