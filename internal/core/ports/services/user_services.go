package services

import (
	"context"
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/dto"
)

// UserSvcFacade manages users and credential checks.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, companyID string, params dto.ListUsersParams) (*dto.ListUsersResponse, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, actorUserID string) error

	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, userID string, refreshToken string, expiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}
