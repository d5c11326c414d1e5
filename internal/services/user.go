package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"chatbox-backend/internal/models"
)

type seedUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EnsureSeedUser(ctx context.Context, name string) (*models.User, error)
}

// UserService resolves the single application user.
type UserService struct {
	users seedUserStore
	log   *zap.Logger
}

func NewUserService(users seedUserStore, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// Get returns the user by id. A missing row maps to NotFound; any other
// storage failure is surfaced as-is so it does not masquerade as a 404.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "User not found"}
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}

// Bootstrap ensures the seed user exists and returns it. Safe to call on
// every startup: once a user row exists, later calls return the existing
// user unchanged.
func (s *UserService) Bootstrap(ctx context.Context, name string) (*models.User, error) {
	user, err := s.users.EnsureSeedUser(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("ensure seed user: %w", err)
	}

	s.log.Info("seed user ready",
		zap.Int64("user_id", user.ID),
		zap.String("name", user.Name),
	)
	return user, nil
}
