package usecase

import (
	"context"
	"errors"
	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidSession = errors.New("invalid session")

// Session is the result of a successful login.
type Session struct {
	Token         string
	ExpiresAt     time.Time
	Identity      entities.Identity
	LandingScreen entities.Screen
}

// ISessionUseCase tracks who is logged in.
//
//   - Login => issues a token and tells the client which screen to open
//   - Resolve => turns a bearer token back into an identity for every request

type ISessionUseCase interface {
	Login(ctx context.Context, username, password string) (Session, error)
	Resolve(ctx context.Context, token string) (entities.Identity, error)
}

type SessionUseCase struct {
	users    *UserUseCase
	userRepo interfaces.IUserRepository
	tokens   interfaces.ITokenIssuer
	logger   *zap.Logger
}

var _ ISessionUseCase = (*SessionUseCase)(nil)

func NewSessionUseCase(userRepo interfaces.IUserRepository, hasher interfaces.IPasswordHasher, tokens interfaces.ITokenIssuer, logger *zap.Logger) *SessionUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionUseCase{
		users:    NewUserUseCase(userRepo, hasher, logger),
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *SessionUseCase) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	identity := user.Identity()
	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		s.logger.Error("[session][usecase] token issue failed", zap.String("user_id", user.ID), zap.Error(err))
		return Session{}, err
	}
	s.logger.Info("[session][usecase] login", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return Session{
		Token:         token,
		ExpiresAt:     expiresAt,
		Identity:      identity,
		LandingScreen: entities.LandingScreen(user.Role),
	}, nil
}

// Resolve validates the token and checks the account still exists, so a
// deleted user loses access before the token expires. The role is read from
// the store, not trusted from the token.
func (s *SessionUseCase) Resolve(ctx context.Context, token string) (entities.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Identity{}, ErrInvalidSession
	}

	claimed, err := s.tokens.Parse(token)
	if err != nil {
		return entities.Identity{}, ErrInvalidSession
	}

	user, err := s.userRepo.GetByID(ctx, claimed.UserID)
	if err != nil {
		return entities.Identity{}, err
	}
	if user.ID == "" {
		return entities.Identity{}, ErrInvalidSession
	}
	return user.Identity(), nil
}
