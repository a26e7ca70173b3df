package store

import "errors"

var (
	ErrUserNotFound  = errors.New("store: user not found")
	ErrSlugTaken     = errors.New("store: slug already taken")
	ErrEmailTaken    = errors.New("store: email already taken")
	ErrNothingToSet  = errors.New("store: no fields to update")
	ErrOwnerNotFound = errors.New("store: owner user not found")
)
