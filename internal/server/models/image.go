package models

import "time"

// Image describes server-side metadata for an uploaded picture. The bytes
// themselves live in object storage under StorageKey; posts reference the
// image by that key.
type Image struct {
	ID          string
	FileName    string
	StorageKey  string
	OwnerID     string
	SizeBytes   int64
	ContentType string
	CreatedAt   time.Time
}
