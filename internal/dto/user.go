package dto

import (
	"time"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a user.
type CreateUserRequest struct {
	Name      string        `json:"name" binding:"required"`
	Email     string        `json:"email" binding:"required,email"`
	Password  string        `json:"password" binding:"required,min=8"`
	CompanyID string        `json:"companyID" binding:"required"`
	BranchID  *string       `json:"branchID"`
	Roles     []domain.Role `json:"roles" binding:"required,min=1,dive,oneof=COLABORADOR APROBADOR RESPONSABLE ADMIN"`
}

// UpdateUserRequest defines the mutable user fields.
type UpdateUserRequest struct {
	Name     *string       `json:"name"`
	BranchID *string       `json:"branchID"`
	Roles    []domain.Role `json:"roles" binding:"omitempty,min=1,dive,oneof=COLABORADOR APROBADOR RESPONSABLE ADMIN"`
}

// UserResponse mirrors domain.User, omitting credentials.
type UserResponse struct {
	UserID    string        `json:"userID"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	CompanyID string        `json:"companyID"`
	BranchID  *string       `json:"branchID,omitempty"`
	Roles     []domain.Role `json:"roles"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
		Roles:     u.Roles.Slice(),
		CreatedAt: u.CreatedAt,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users     []UserResponse `json:"users"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// LoginRequest carries password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest identifies the user whose refresh cookie is presented.
type RefreshRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// GoogleIDTokenRequest carries a Google-issued ID token for direct sign-in.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
