package usecase

import (
	"context"
	"errors"
	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserFieldsRequired = errors.New("username and password are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotDeletable  = errors.New("admin users cannot be deleted")
)

// IUserUseCase exposes the Identity Store operations.
//
//   - Authenticate => login form
//   - CreateUser / DeleteUser / ListUsers => user management screen (admin)
//   - EnsureAdmin => start-up bootstrap of the first admin account

type IUserUseCase interface {
	Authenticate(ctx context.Context, username, password string) (entities.User, error)
	CreateUser(ctx context.Context, username, password string) (entities.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]entities.User, error)
	EnsureAdmin(ctx context.Context, username, password string) (entities.User, error)
}

type UserUseCase struct {
	repo   interfaces.IUserRepository
	hasher interfaces.IPasswordHasher
	logger *zap.Logger
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(repo interfaces.IUserRepository, hasher interfaces.IPasswordHasher, logger *zap.Logger) *UserUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserUseCase{repo: repo, hasher: hasher, logger: logger}
}

// Authenticate returns the user matching both credentials. Every failure
// collapses into ErrInvalidCredentials so callers cannot tell which part was
// wrong.
func (u *UserUseCase) Authenticate(ctx context.Context, username, password string) (entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return entities.User{}, ErrInvalidCredentials
	}

	user, err := u.repo.GetByUsername(ctx, username)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" || !u.hasher.Verify(user.PasswordHash, password) {
		u.logger.Info("[user][usecase] authentication rejected", zap.String("username", username))
		return entities.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// CreateUser registers a regular user. Accounts created through the API are
// never admins.
func (u *UserUseCase) CreateUser(ctx context.Context, username, password string) (entities.User, error) {
	return u.create(ctx, username, password, entities.RoleUser)
}

func (u *UserUseCase) create(ctx context.Context, username, password string, role entities.Role) (entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return entities.User{}, ErrUserFieldsRequired
	}

	existing, err := u.repo.GetByUsername(ctx, username)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return entities.User{}, ErrUsernameTaken
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return entities.User{}, err
	}

	user := entities.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, user)
	if err != nil {
		u.logger.Error("[user][usecase] create failed", zap.String("username", username), zap.Error(err))
		return entities.User{}, err
	}
	u.logger.Info("[user][usecase] user created", zap.String("user_id", created.ID), zap.String("role", string(role)))
	return created, nil
}

func (u *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidUserID
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.ID == "" {
		return ErrUserNotFound
	}
	if existing.IsAdmin() {
		return ErrAdminNotDeletable
	}

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted.ID == "" {
		return ErrUserNotFound
	}
	u.logger.Info("[user][usecase] user deleted", zap.String("user_id", id))
	return nil
}

// ListUsers returns the non-admin accounts, the ones an admin can manage.
func (u *UserUseCase) ListUsers(ctx context.Context) ([]entities.User, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]entities.User, 0, len(all))
	for _, usr := range all {
		if !usr.IsAdmin() {
			users = append(users, usr)
		}
	}
	return users, nil
}

// EnsureAdmin creates the admin account when no user holds that username.
// An existing account is returned untouched, whatever its role.
func (u *UserUseCase) EnsureAdmin(ctx context.Context, username, password string) (entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return entities.User{}, ErrUserFieldsRequired
	}

	existing, err := u.repo.GetByUsername(ctx, username)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return existing, nil
	}
	return u.create(ctx, username, password, entities.RoleAdmin)
}
