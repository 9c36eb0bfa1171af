package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bloggyhq/bloggy/internal/server/models"
	"github.com/bloggyhq/bloggy/internal/server/services"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type postResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	ImageKey   string    `json:"imageKey,omitempty"`
	Stars      int64     `json:"stars"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		ImageKey:   p.ImageKey,
		Stars:      p.Stars,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPostResponses(posts []*models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func (s *HTTPServer) handlePostCreate(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: "invalid request body"})
	}

	post, err := s.posts.Create(c.UserContext(), requesterID(c), req.Title, req.Content, req.Image)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostResponse(post))
}

func (s *HTTPServer) handlePostGet(c *fiber.Ctx) error {
	post, err := s.posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(toPostResponse(post))
}

func (s *HTTPServer) handlePostList(c *fiber.Ctx) error {
	posts, err := s.posts.ListAll(c.UserContext(), c.QueryInt("page"), c.QueryInt("limit"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(toPostResponses(posts))
}

func (s *HTTPServer) handlePostMostLiked(c *fiber.Ctx) error {
	posts, err := s.posts.ListMostStarred(c.UserContext(), c.QueryInt("page"), c.QueryInt("limit"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(toPostResponses(posts))
}

func (s *HTTPServer) handlePostsByAuthor(c *fiber.Ctx) error {
	posts, err := s.posts.ListByAuthor(c.UserContext(), c.Params("authorId"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(toPostResponses(posts))
}

func (s *HTTPServer) handlePostEdit(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: "invalid request body"})
	}

	post, err := s.posts.Update(c.UserContext(), requesterID(c), c.Params("id"), req.Title, req.Content, req.Image)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(toPostResponse(post))
}

func (s *HTTPServer) handlePostDelete(c *fiber.Ctx) error {
	if err := s.posts.Delete(c.UserContext(), requesterID(c), c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(messageResponse{Message: "post deleted"})
}

func (s *HTTPServer) handleStar(c *fiber.Ctx) error {
	if _, err := s.posts.Star(c.UserContext(), requesterID(c), c.Params("postId")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"result": services.Starred})
}

func (s *HTTPServer) handleUnstar(c *fiber.Ctx) error {
	if _, err := s.posts.Unstar(c.UserContext(), requesterID(c), c.Params("postId")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"result": services.Unstarred})
}
