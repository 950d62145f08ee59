// Package model defines domain entities for the application.
package model

import "time"

// User is a registered diner. SessionToken is the opaque credential
// carried in the session cookie and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SessionToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
