package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates a directed edge from follower to followed. Following a
// user does not make them follow back.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		return err
	}
	return s.followRepo.Create(ctx, followerID, followedID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	return s.followRepo.Delete(ctx, followerID, followedID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followedID)
}

// IsFollowedBy reports whether otherID follows userID. The reverse of
// IsFollowing, never implied by it.
func (s *FollowService) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, otherID, userID)
}

func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.Following(ctx, userID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.Followers(ctx, userID)
}

func (s *FollowService) Counts(ctx context.Context, userID uint) (following int64, followers int64, err error) {
	return s.followRepo.Counts(ctx, userID)
}
