package models

import "time"

// Post is a blog entry. Stars is a denormalized counter; the source of truth
// is the post_stars relation, and the two are only ever updated together
// inside one transaction so the counter always equals the set cardinality.
type Post struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	ImageKey  string
	Stars     int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// AuthorName is populated by listing queries that join users.
	AuthorName string
}
