package services

import (
	"errors"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin role required")
	ErrNotFound        = repository.ErrNotFound

	ErrAlreadyApplied = errors.New("already applied to this job")
	ErrJobNotOpen     = errors.New("job is not accepting applications")
	ErrOwnJob         = errors.New("cannot apply to own job")

	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidRole   = errors.New("invalid role")
)
