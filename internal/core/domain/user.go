package domain

import "time"

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// IsKnownRole reports whether role is one of the closed set of role names.
func IsKnownRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// User models an account that can authenticate against the API.
// RefreshToken and RefreshTokenExpiresAt are always written and cleared together.
type User struct {
	ID                    string     `json:"id" bson:"_id,omitempty"`
	Username              string     `json:"username" bson:"username"`
	Email                 string     `json:"email" bson:"email"`
	PasswordHash          string     `json:"-" bson:"password_hash"`
	Role                  string     `json:"role" bson:"role"`
	IsActive              bool       `json:"is_active" bson:"is_active"`
	LastLoginAt           *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	RefreshToken          string     `json:"-" bson:"refresh_token,omitempty"`
	RefreshTokenExpiresAt *time.Time `json:"-" bson:"refresh_token_expires_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at" bson:"created_at"`
}

// Permissions resolves the capabilities of the user's role.
func (u *User) Permissions() Permission {
	return PermissionsForRole(u.Role)
}

// RefreshTokenValid reports whether the stored refresh token is usable at now.
// An expiry equal to now counts as expired.
func (u *User) RefreshTokenValid(now time.Time) bool {
	if u.RefreshToken == "" || u.RefreshTokenExpiresAt == nil {
		return false
	}
	return u.RefreshTokenExpiresAt.After(now)
}
