package service

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrDuplicateCompany = errors.New("company email or phone already exists")
)
