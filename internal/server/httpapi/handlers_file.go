package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bloggyhq/bloggy/internal/common"
)

func (s *HTTPServer) handleFileUpload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return s.respondError(c, common.ErrorNoFile)
	}

	file, err := header.Open()
	if err != nil {
		return s.respondError(c, err)
	}
	defer file.Close()

	image, err := s.images.Upload(c.UserContext(), requesterID(c),
		header.Filename, header.Header.Get(fiber.HeaderContentType), header.Size, file)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"key": image.StorageKey})
}
