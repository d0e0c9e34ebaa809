package models

import (
	"database/sql"
	"time"
)

// User is the DB shape of a users row. Roles are stored as a text array and
// scanned into a plain slice.
type User struct {
	UserID       string   `db:"user_id"`
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Roles        []string `db:"roles"`
	CompanyID    string   `db:"company_id"`
	BranchID     *string  `db:"branch_id"`
	AuditFields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
	DeletedAt              *time.Time     `db:"deleted_at"`
}
