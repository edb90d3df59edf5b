package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/formdesk/formdesk/internal/handler/dto"
	"github.com/formdesk/formdesk/internal/model"
)

// UserLister defines the user read operations the handler depends on.
type UserLister interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// UserHandler handles HTTP requests for user operations.
// Users are read-only through the API.
type UserHandler struct {
	repo   UserLister
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(repo UserLister, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
