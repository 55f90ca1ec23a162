package ports

import (
	"context"
	"time"

	"github.com/openboard/tracker/internal/core/domain"
)

// SignupInput carries the fields of an open signup request.
type SignupInput struct {
	Username        string
	Password        string
	FirstName       string
	LastName        string
	Email           string
	BirthDate       time.Time
	CanBeContacted  bool
	CanDataBeShared bool
}

// UpdateUserInput carries a user mutation; nil fields are left untouched.
type UpdateUserInput struct {
	Password        *string
	FirstName       *string
	LastName        *string
	Email           *string
	BirthDate       *time.Time
	CanBeContacted  *bool
	CanDataBeShared *bool
}

// UserService implements account management. Mutations are restricted to
// the account owner.
type UserService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Get(ctx context.Context, userID int64) (*domain.User, error)
	List(ctx context.Context, page Page) ([]domain.User, int64, error)
	Update(ctx context.Context, callerID, userID int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, callerID, userID int64) error
}
