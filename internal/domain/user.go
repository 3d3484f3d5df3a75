package domain

import "time"

type User struct {
	ID           int32      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	IsStaff      bool       `json:"is_staff"`
	IsActive     bool       `json:"is_active"`
	DateJoined   time.Time  `json:"date_joined"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// PasswordReset is a single-use token mailed to a user who requested a
// password reset.
type PasswordReset struct {
	ID        int32      `json:"id"`
	UserID    int32      `json:"user_id"`
	Token     string     `json:"token"`
	ExpiresOn time.Time  `json:"expires_on"`
	UsedOn    *time.Time `json:"used_on,omitempty"`
}
