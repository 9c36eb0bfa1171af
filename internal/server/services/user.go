// Package services contains server-side business logic. This file implements
// UserService, which handles registration, email verification, and login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bloggyhq/bloggy/internal/common"
	"github.com/bloggyhq/bloggy/internal/logging"
	"github.com/bloggyhq/bloggy/internal/server/auth"
	"github.com/bloggyhq/bloggy/internal/server/config"
	"github.com/bloggyhq/bloggy/internal/server/mail"
	"github.com/bloggyhq/bloggy/internal/server/models"
	"github.com/bloggyhq/bloggy/internal/server/repositories/repomanager"
)

// UserService provides account-related operations:
//   - Register: create users and dispatch a verification mail
//   - Verify: confirm an address from a signed verification token
//   - Login: verify credentials and mint a session token
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        *auth.PasswordHasher
	sessionCodec  *auth.TokenCodec
	verifyCodec   *auth.TokenCodec
	mailer        mail.Mailer
	publicBaseURL string
	logger        logging.Logger
}

// NewUserService constructs a UserService. The two token codecs are built
// from independent secrets so session and verification tokens can never
// stand in for one another.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, mailer mail.Mailer, logger logging.Logger) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		hasher:        auth.NewPasswordHasher(cfg.BcryptCost),
		sessionCodec:  auth.NewTokenCodec([]byte(cfg.TokenSecret), cfg.TokenValidityDuration),
		verifyCodec:   auth.NewTokenCodec([]byte(cfg.EmailTokenSecret), cfg.TokenValidityDuration),
		mailer:        mailer,
		publicBaseURL: cfg.PublicBaseURL,
		logger:        logger.With("module", "user_service"),
	}
}

// SessionCodec exposes the session token codec for the HTTP middleware.
func (s *UserService) SessionCodec() *auth.TokenCodec {
	return s.sessionCodec
}

// Register creates an unverified account and dispatches the verification
// mail in the background. Mail failures are logged, never retried, and never
// fail the registration itself.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)

	// the unique index still guards the insert; checking first keeps the
	// duplicate answer independent of the driver's constraint error
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		IsVerified:   false,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.verifyCodec.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing verification token: %w", err)
	}

	link := fmt.Sprintf("%s/user/verify/%s", s.publicBaseURL, token)
	go func() {
		// detach from the request; the request finishing must not cancel delivery
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendVerification(ctx, user.Email, link); err != nil {
			s.logger.Error(ctx, "verification mail failed", "email", user.Email, "error", err.Error())
		}
	}()

	return user, nil
}

// Verify confirms the address carried by a verification token and marks the
// account verified. Expired or forged tokens surface their sentinel errors.
func (s *UserService) Verify(ctx context.Context, token string) error {
	claims, err := s.verifyCodec.Verify(token)
	if err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if user.Email != claims.Email {
		return common.ErrTokenMalformed
	}

	return repo.MarkVerified(ctx, user.ID)
}

// Login checks the credentials and returns a session token plus the account.
// Unknown email and wrong password both map to ErrorBadCredentials so the
// response does not reveal which one failed; an unverified account is
// reported distinctly.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorBadCredentials
		}
		return "", nil, err
	}

	if !user.IsVerified {
		return "", nil, common.ErrorEmailUnverified
	}

	if err := s.hasher.Compare(password, user.PasswordHash); err != nil {
		return "", nil, err
	}

	token, err := s.sessionCodec.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing session token: %w", err)
	}

	return token, user, nil
}

// GetProfile returns a user's own record; requesting someone else's profile
// is forbidden.
func (s *UserService) GetProfile(ctx context.Context, requesterID, id string) (*models.User, error) {
	if requesterID != id {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// GetUsername resolves a public username by user ID.
func (s *UserService) GetUsername(ctx context.Context, id string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}
