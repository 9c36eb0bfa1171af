package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bloggyhq/bloggy/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the account without its password hash.
type userResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

func (s *HTTPServer) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: "invalid request body"})
	}

	user, err := s.users.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	s.logger.Info(c.UserContext(), "user registered", "email", user.Email)
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

func (s *HTTPServer) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: "invalid request body"})
	}

	token, user, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(loginResponse{Token: token, User: toUserResponse(user)})
}

func (s *HTTPServer) handleVerify(c *fiber.Ctx) error {
	if err := s.users.Verify(c.UserContext(), c.Params("token")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(messageResponse{Message: "email verified"})
}

func (s *HTTPServer) handleUsername(c *fiber.Ctx) error {
	name, err := s.users.GetUsername(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"username": name})
}

func (s *HTTPServer) handleProfile(c *fiber.Ctx) error {
	user, err := s.users.GetProfile(c.UserContext(), requesterID(c), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

func (s *HTTPServer) handleIsStarred(c *fiber.Ctx) error {
	starred, err := s.posts.IsStarred(c.UserContext(), requesterID(c), c.Params("postId"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"starred": starred})
}
