package domain

import "time"

// Role defines the workflow roles recognized by the approval policy.
type Role string

const (
	RoleColaborador Role = "COLABORADOR" // creates and edits own drafts
	RoleAprobador   Role = "APROBADOR"   // approves, rejects and pays expenses
	RoleResponsable Role = "RESPONSABLE" // aprobador plus delete and fund assignment
	RoleAdmin       Role = "ADMIN"       // superset of everything
)

// RoleSet is the set of roles held by an actor.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from a list of roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given role.
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// HasAny reports whether the set contains at least one of the given roles.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Slice returns the roles as a slice, for serialization.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}

// User represents an application user.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Roles        RoleSet `json:"roles"`
	CompanyID    string  `json:"companyID"` // FK -> companies.company_id
	BranchID     *string `json:"branchID"`  // Optional FK -> branches.branch_id
	AuditFields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"deletedAt,omitempty"` // Soft delete
}

// GoogleUserInfo is the profile returned by the Google userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
