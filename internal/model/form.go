package model

import "time"

// Form represents a contact-form submission.
//
// ID and CreatedAt are assigned by the database on insert and never change
// afterwards. Name, Email and Message are the only mutable fields.
type Form struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FormInput carries the caller-supplied fields of a submission.
// The same shape is used for create and update.
type FormInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
