package repositories

import (
	"context"
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
)

// UserRepositoryFacade is the persistence boundary for users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.User, *string, error)
	UpdateUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error
}
