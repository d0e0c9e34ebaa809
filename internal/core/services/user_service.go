package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
	"github.com/gastosapp/gastos_backend/internal/middleware"
	"github.com/gastosapp/gastos_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.userRepo.FindUserByEmail(ctx, email); err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
	} else if existing != nil {
		return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, email)
	}

	if _, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		if apperrors.IsNotFound(err) {
			vErr := &apperrors.ValidationError{}
			vErr.Add("companyID", "does not exist")
			return nil, vErr
		}
		return nil, fmt.Errorf("failed to load company %s: %w", req.CompanyID, err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashed,
		Roles:        domain.NewRoleSet(req.Roles...),
		CompanyID:    req.CompanyID,
		BranchID:     req.BranchID,
		AuditFields:  domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("user created", "userID", user.UserID, "email", user.Email)
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, companyID string, params dto.ListUsersParams) (*dto.ListUsersResponse, error) {
	users, nextToken, err := s.userRepo.ListUsers(ctx, companyID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	resp := &dto.ListUsersResponse{NextToken: nextToken}
	resp.Users = make([]dto.UserResponse, len(users))
	for i := range users {
		resp.Users[i] = dto.ToUserResponse(&users[i])
	}
	return resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorUserID string) (*domain.User, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user %s: %w", actorUserID, err)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Role changes are an admin concern; users may only rename themselves.
	isAdmin := actor.Roles.Has(domain.RoleAdmin)
	if actor.UserID != userID && !isAdmin {
		return nil, fmt.Errorf("%w: cannot modify another user", apperrors.ErrForbidden)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.BranchID != nil {
		user.BranchID = req.BranchID
	}
	if len(req.Roles) > 0 {
		if !isAdmin {
			return nil, fmt.Errorf("%w: only admins may change roles", apperrors.ErrForbidden)
		}
		user.Roles = domain.NewRoleSet(req.Roles...)
	}
	user.Touch(actorUserID, time.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, actorUserID string) error {
	actor, err := s.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		return fmt.Errorf("failed to load acting user %s: %w", actorUserID, err)
	}
	if !actor.Roles.Has(domain.RoleAdmin) {
		return fmt.Errorf("%w: only admins may delete users", apperrors.ErrForbidden)
	}
	return s.userRepo.DeleteUser(ctx, userID, actorUserID, time.Now())
}

func (s *userService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}
	if user.DeletedAt != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) SetRefreshToken(ctx context.Context, userID string, refreshToken string, expiryTime time.Time) error {
	hash := utils.HashRefreshToken(refreshToken)
	return s.userRepo.UpdateRefreshToken(ctx, userID, hash, &expiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, "", nil)
}

// FindOrCreateGoogleUser resolves a Google profile to a local user, creating
// a collaborator account on first login. Google accounts carry no password;
// they can only authenticate through the OAuth flow.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(info.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if user.DeletedAt != nil {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil || len(companies) == 0 {
		return nil, fmt.Errorf("%w: no company available for google sign-up", apperrors.ErrConflict)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:      uuid.NewString(),
		Name:        info.Name,
		Email:       email,
		Roles:       domain.NewRoleSet(domain.RoleColaborador),
		CompanyID:   companies[0].CompanyID,
		AuditFields: domain.NewAuditFields("google-oauth", now),
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	logger.Info("google user provisioned", "userID", newUser.UserID, "email", newUser.Email)
	return &newUser, nil
}
