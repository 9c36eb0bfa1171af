package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bloggyhq/bloggy/internal/logging"
	"github.com/bloggyhq/bloggy/internal/server/services"
)

// HTTPServer exposes the blog services over REST.
type HTTPServer struct {
	address  string
	app      *fiber.App
	users    *services.UserService
	posts    *services.PostService
	comments *services.CommentService
	images   *services.ImageService
	logger   logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, us *services.UserService,
	ps *services.PostService, cs *services.CommentService, is *services.ImageService) *HTTPServer {

	s := &HTTPServer{
		address:  address,
		users:    us,
		posts:    ps,
		comments: cs,
		images:   is,
		logger:   l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "bloggy",
		DisableStartupMessage: true,
		// uploads are size-checked in the image service; the body limit only
		// has to let a rejectable request reach the handler
		BodyLimit: 8 << 20,
	})
	s.routes()

	return s
}

func (s *HTTPServer) routes() {
	gate := s.requireAuth()

	user := s.app.Group("/user")
	user.Post("/register", s.handleRegister)
	user.Post("/login", s.handleLogin)
	user.Get("/verify/:token", s.handleVerify)
	user.Get("/username/:id", s.handleUsername)
	user.Get("/starred/:postId", gate, s.handleIsStarred)
	user.Get("/:id", gate, s.handleProfile)

	post := s.app.Group("/post")
	post.Get("/all", s.handlePostList)
	post.Get("/most-liked", s.handlePostMostLiked)
	post.Get("/author/:authorId", s.handlePostsByAuthor)
	post.Post("/create", gate, s.handlePostCreate)
	post.Put("/edit/:id", gate, s.handlePostEdit)
	post.Delete("/delete/:id", gate, s.handlePostDelete)
	post.Post("/star/:postId", gate, s.handleStar)
	post.Delete("/star/:postId", gate, s.handleUnstar)
	post.Get("/:id", s.handlePostGet)

	comment := s.app.Group("/comment")
	comment.Get("/", s.handleCommentList)
	comment.Get("/post/:postId", s.handleCommentsByPost)
	comment.Post("/create", gate, s.handleCommentCreate)
	comment.Delete("/delete/:id", gate, s.handleCommentDelete)

	s.app.Post("/file/upload", gate, s.handleFileUpload)
}

// Run starts the listener and shuts down gracefully when ctx is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
