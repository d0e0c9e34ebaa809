package dto

import "time"

// LoginResponse is returned on successful authentication. The refresh token
// travels in an HTTP-only cookie, not in this body.
type LoginResponse struct {
	UserID      string       `json:"userID"`
	Name        string       `json:"name"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}
