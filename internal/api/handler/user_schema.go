package handler

import "strings"

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=Admin Manager User"`
	IsActive *bool   `json:"is_active"`
}

func (r updateUserRequest) Changes() map[string]any {
	set := map[string]any{}
	setIf(set, "username", r.Username)
	if r.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	setIf(set, "role", r.Role)
	setIf(set, "is_active", r.IsActive)
	return set
}
