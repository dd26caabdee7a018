// Package service contains the application's business logic.
package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

type UpdateProfileInput struct {
	UserID         uint
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
	// Password is the current password, required to confirm the edit.
	Password string
}

// Signup validates the input, hashes the password, and creates the user.
// bcrypt salts each hash, so two users with identical passwords still get
// distinct stored hashes.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashedPassword),
		ImageURL: in.ImageURL,
	}
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks up the user by username and verifies the password.
// Both an unknown username and a wrong password return (nil, nil) so
// callers cannot distinguish which check failed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile serves display reads through the cache. The cached copy has
// no password hash, so it is unsuitable for credential checks.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDCached(ctx, id)
}

func (s *UserService) GetUserWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.userRepo.GetByIDWithMessages(ctx, id, limit)
}

func (s *UserService) ListUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, query, limit, offset)
}

// UpdateProfile applies profile edits after confirming the user's current
// password. A wrong password leaves the profile unmodified.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Incorrect password")
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.ImageURL != "" {
		user.ImageURL = in.ImageURL
	}
	if in.HeaderImageURL != "" {
		user.HeaderImageURL = in.HeaderImageURL
	}
	user.Bio = in.Bio
	user.Location = in.Location

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user together with their messages and follow
// edges in one transaction.
func (s *UserService) DeleteAccount(ctx context.Context, id uint) error {
	return s.userRepo.DeleteWithDependents(ctx, id)
}
