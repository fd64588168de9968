package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	List(ctx context.Context) ([]User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	UpdateRole(ctx context.Context, userID string, role Role) (User, error)
	UpdateSignatureURL(ctx context.Context, userID string, signatureURL string) error
}
