package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	localsUserID = "userID"
	localsEmail  = "userEmail"
)

// requireAuth guards a route behind a Bearer session token. A missing token
// and an invalid one get distinct messages; both are 401.
func (s *HTTPServer) requireAuth() fiber.Handler {
	codec := s.users.SessionCodec()

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(messageResponse{Message: "missing token"})
		}

		claims, err := codec.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(messageResponse{Message: "invalid or expired token"})
		}

		c.Locals(localsUserID, claims.UserID)
		c.Locals(localsEmail, claims.Email)
		return c.Next()
	}
}

// requesterID returns the user ID the gate stored for this request.
func requesterID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsUserID).(string)
	return id
}
