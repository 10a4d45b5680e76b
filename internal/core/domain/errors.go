package domain

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrValidation = errors.New("validation failed")
var ErrDuplicate = errors.New("resource already exists")
var ErrForbidden = errors.New("access forbidden")

// Authentication failures share one message so callers cannot tell an
// unknown account from a wrong password or a stale refresh token.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many failed login attempts")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
