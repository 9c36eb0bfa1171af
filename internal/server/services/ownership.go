package services

import "github.com/bloggyhq/bloggy/internal/common"

// RequireOwner allows a mutation iff the resource's recorded author equals
// the authenticated identity. Identifier equality, nothing more; it is applied
// before every post edit/delete and comment delete, and never to reads.
func RequireOwner(authorID, userID string) error {
	if authorID == "" || authorID != userID {
		return common.ErrorForbidden
	}
	return nil
}
