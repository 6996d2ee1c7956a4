package entity

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. VerificationOTP and OTPExpiresAt are only
// set while email verification is pending; both are cleared on success.
type User struct {
	Base
	Username        string     `db:"username"`
	Email           string     `db:"email"`
	PasswordHash    string     `db:"password"`
	Role            UserRole   `db:"role"`
	IsVerified      bool       `db:"is_verified"`
	VerificationOTP *string    `db:"verification_otp"`
	OTPExpiresAt    *time.Time `db:"otp_expires_at"`
}
