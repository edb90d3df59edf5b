// Package model defines domain entities for the application.
package model

// User represents a registered user. Users are created out-of-band
// (seed data or operator tooling) and are read-only through the API.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
