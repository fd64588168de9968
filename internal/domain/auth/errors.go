package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrEmailAlreadyExists         = errors.New("email is already registered")
	ErrInvalidToken               = errors.New("invalid token")
	ErrTokenExpired               = errors.New("token expired")
	ErrRefreshTokenRevoked        = errors.New("refresh token revoked")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
	ErrUserNotFound               = errors.New("user not found")
	ErrOAuthStateMismatch         = errors.New("oauth state mismatch")
	ErrOAuthNotConfigured         = errors.New("google sign-in is not configured")
)
