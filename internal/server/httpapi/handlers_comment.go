package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bloggyhq/bloggy/internal/server/models"
)

type commentRequest struct {
	Post    string `json:"post"`
	Content string `json:"content"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentResponse(cm *models.Comment) commentResponse {
	return commentResponse{
		ID:        cm.ID,
		Content:   cm.Content,
		AuthorID:  cm.AuthorID,
		PostID:    cm.PostID,
		CreatedAt: cm.CreatedAt,
	}
}

func (s *HTTPServer) handleCommentCreate(c *fiber.Ctx) error {
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: "invalid request body"})
	}

	comment, err := s.comments.Create(c.UserContext(), requesterID(c), req.Post, req.Content)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCommentResponse(comment))
}

func (s *HTTPServer) handleCommentList(c *fiber.Ctx) error {
	comments, err := s.comments.ListAll(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, toCommentResponse(cm))
	}
	return c.JSON(out)
}

func (s *HTTPServer) handleCommentsByPost(c *fiber.Ctx) error {
	comments, err := s.comments.ListByPost(c.UserContext(), c.Params("postId"))
	if err != nil {
		return s.respondError(c, err)
	}
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, toCommentResponse(cm))
	}
	return c.JSON(out)
}

func (s *HTTPServer) handleCommentDelete(c *fiber.Ctx) error {
	if err := s.comments.Delete(c.UserContext(), requesterID(c), c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
