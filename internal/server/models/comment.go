package models

import "time"

// Comment belongs to a post; only its author may delete it.
type Comment struct {
	ID        string
	Content   string
	AuthorID  string
	PostID    string
	CreatedAt time.Time
}
