package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/formdesk/formdesk/internal/model"
)

// ErrFormNotFound is returned when a form ID references no existing row.
var ErrFormNotFound = errors.New("form not found")

// formColumns are the columns selected for form rows, in scan order.
var formColumns = []string{"id", "name", "email", "message", "created_at"}

// CreateForm inserts a new form submission and returns the stored row.
// ID and created_at are assigned by the database.
func (r *Repository) CreateForm(ctx context.Context, input model.FormInput) (*model.Form, error) {
	query, args, err := builder.
		Insert("forms").
		Columns("name", "email", "message").
		Values(input.Name, input.Email, input.Message).
		Suffix("RETURNING id, name, email, message, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	form, err := scanForm(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	return form, nil
}

// GetFormByID retrieves a form by its ID.
func (r *Repository) GetFormByID(ctx context.Context, id int64) (*model.Form, error) {
	query, args, err := builder.
		Select(formColumns...).
		From("forms").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	form, err := scanForm(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form by ID: %w", err)
	}

	return form, nil
}

// ListForms retrieves all form submissions, newest first.
// Ordering by (created_at, id) keeps rows with equal timestamps stable.
func (r *Repository) ListForms(ctx context.Context) ([]*model.Form, error) {
	query, args, err := builder.
		Select(formColumns...).
		From("forms").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	var forms []*model.Form
	for rows.Next() {
		var f model.Form
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Message, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}
		forms = append(forms, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forms: %w", err)
	}

	return forms, nil
}

// UpdateForm updates a form's mutable fields and returns the stored row.
// created_at is never touched.
func (r *Repository) UpdateForm(ctx context.Context, id int64, input model.FormInput) (*model.Form, error) {
	query, args, err := builder.
		Update("forms").
		Set("name", input.Name).
		Set("email", input.Email).
		Set("message", input.Message).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, email, message, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	form, err := scanForm(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	return form, nil
}

// DeleteForm permanently removes a form submission. No soft delete.
func (r *Repository) DeleteForm(ctx context.Context, id int64) error {
	query, args, err := builder.
		Delete("forms").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrFormNotFound
	}

	return nil
}

// scanForm scans a single row into a Form model.
func scanForm(row pgx.Row) (*model.Form, error) {
	var f model.Form
	err := row.Scan(&f.ID, &f.Name, &f.Email, &f.Message, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
