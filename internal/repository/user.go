package repository

import (
	"context"
	"fmt"

	"github.com/formdesk/formdesk/internal/model"
)

// ListUsers retrieves all users ordered by ID.
// Users are read-only through the API; rows are created out-of-band.
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query, args, err := builder.
		Select("id", "name", "email").
		From("users").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
