// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. The set of posts a user has starred lives in
// the post_stars relation and is queried through the posts repository, not
// embedded here.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsVerified   bool
	CreatedAt    time.Time
}
