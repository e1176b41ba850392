package service

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("forbidden")

	ErrFamilyNotFound  = errors.New("family not found")
	ErrFamilyExists    = errors.New("family already registered for this user")
	ErrFamilyInactive  = errors.New("family is inactive")
	ErrMemberNotFound  = errors.New("member not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrInvalidStatus   = errors.New("invalid status")
)
