package repository

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres, mongo) inside this directory.

import "errors"

// ErrDuplicateEmail is returned by UserRepository.Create when the email is
// already registered. Implementations map their engine's unique constraint
// violation to this error.
var ErrDuplicateEmail = errors.New("email already registered")
