package service

import "errors"

var (
	ErrFieldIsEmpty    = errors.New("field is empty")
	ErrUnknownEmail    = errors.New("unknown email")
	ErrPasswordUnknown = errors.New("unknown password")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrEmailRegistered = errors.New("email already registered")
	ErrUnknownRole     = errors.New("unknown role")
)
