package user

import (
	"context"

	"albumizer/internal/domain"
)

type CreateUserInput struct {
	Username     string
	PasswordHash string
}

type Repository interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
