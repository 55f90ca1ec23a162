package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openboard/tracker/internal/api/metrics"
	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// UserService implements account management. Anyone may sign up; mutations
// are restricted to the account owner.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.BirthDate.IsZero() {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:        input.Username,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		BirthDate:       input.BirthDate,
		CanBeContacted:  input.CanBeContacted,
		CanDataBeShared: input.CanDataBeShared,
		CreatedAt:       now,
	}

	if user.Age(now) < domain.MinimumAge {
		return nil, domain.ErrUserTooYoung
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("user").Inc()
	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user signed up")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context, page ports.Page) ([]domain.User, int64, error) {
	page = page.Normalize()
	return s.users.List(ctx, page.Limit(), page.Offset())
}

func (s *UserService) Update(ctx context.Context, callerID, userID int64, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if callerID != userID {
		return nil, domain.ErrForbidden
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.BirthDate != nil {
		user.BirthDate = *input.BirthDate
		if user.Age(time.Now().UTC()) < domain.MinimumAge {
			return nil, domain.ErrUserTooYoung
		}
	}
	if input.CanBeContacted != nil {
		user.CanBeContacted = *input.CanBeContacted
	}
	if input.CanDataBeShared != nil {
		user.CanDataBeShared = *input.CanDataBeShared
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, callerID, userID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if callerID != userID {
		return domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", userID).Msg("user deleted")
	return nil
}
