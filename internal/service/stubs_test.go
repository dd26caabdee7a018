package service

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByIDCachedFn       func(context.Context, uint) (*models.User, error)
	getByIDWithMessagesFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	deleteWithDependentsFn func(context.Context, uint) error
	listFn                func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDCached(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDCachedFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithMessagesFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) DeleteWithDependents(ctx context.Context, id uint) error {
	return s.deleteWithDependentsFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, query, limit, offset)
}

// noopUserRepo returns a stub whose every method fails the test if called,
// so each test only wires the calls it expects.
func noopUserRepo(t *testing.T) *userRepoStub {
	t.Helper()
	fail := func(name string) {
		t.Fatalf("unexpected call to UserRepository.%s", name)
	}
	return &userRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.User, error) { fail("GetByID"); return nil, nil },
		getByIDCachedFn:       func(context.Context, uint) (*models.User, error) { fail("GetByIDCached"); return nil, nil },
		getByIDWithMessagesFn: func(context.Context, uint, int) (*models.User, error) { fail("GetByIDWithMessages"); return nil, nil },
		getByEmailFn:          func(context.Context, string) (*models.User, error) { fail("GetByEmail"); return nil, nil },
		getByUsernameFn:       func(context.Context, string) (*models.User, error) { fail("GetByUsername"); return nil, nil },
		createFn:              func(context.Context, *models.User) error { fail("Create"); return nil },
		updateFn:              func(context.Context, *models.User) error { fail("Update"); return nil },
		deleteWithDependentsFn: func(context.Context, uint) error { fail("DeleteWithDependents"); return nil },
		listFn:                func(context.Context, string, int, int) ([]models.User, error) { fail("List"); return nil, nil },
	}
}

type messageRepoStub struct {
	createFn       func(context.Context, *models.Message) error
	getByIDFn      func(context.Context, uint) (*models.Message, error)
	deleteFn       func(context.Context, uint) error
	getByUserIDFn  func(context.Context, uint, int) ([]models.Message, error)
	homeTimelineFn func(context.Context, uint, int) ([]models.Message, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *messageRepoStub) GetByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.getByUserIDFn(ctx, userID, limit)
}
func (s *messageRepoStub) HomeTimeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.homeTimelineFn(ctx, userID, limit)
}

func noopMessageRepo(t *testing.T) *messageRepoStub {
	t.Helper()
	fail := func(name string) {
		t.Fatalf("unexpected call to MessageRepository.%s", name)
	}
	return &messageRepoStub{
		createFn:       func(context.Context, *models.Message) error { fail("Create"); return nil },
		getByIDFn:      func(context.Context, uint) (*models.Message, error) { fail("GetByID"); return nil, nil },
		deleteFn:       func(context.Context, uint) error { fail("Delete"); return nil },
		getByUserIDFn:  func(context.Context, uint, int) ([]models.Message, error) { fail("GetByUserID"); return nil, nil },
		homeTimelineFn: func(context.Context, uint, int) ([]models.Message, error) { fail("HomeTimeline"); return nil, nil },
	}
}

type followRepoStub struct {
	createFn      func(context.Context, uint, uint) error
	deleteFn      func(context.Context, uint, uint) error
	isFollowingFn func(context.Context, uint, uint) (bool, error)
	followingFn   func(context.Context, uint) ([]models.User, error)
	followersFn   func(context.Context, uint) ([]models.User, error)
	countsFn      func(context.Context, uint) (int64, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followedID uint) error {
	return s.createFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo(t *testing.T) *followRepoStub {
	t.Helper()
	fail := func(name string) {
		t.Fatalf("unexpected call to FollowRepository.%s", name)
	}
	return &followRepoStub{
		createFn:      func(context.Context, uint, uint) error { fail("Create"); return nil },
		deleteFn:      func(context.Context, uint, uint) error { fail("Delete"); return nil },
		isFollowingFn: func(context.Context, uint, uint) (bool, error) { fail("IsFollowing"); return false, nil },
		followingFn:   func(context.Context, uint) ([]models.User, error) { fail("Following"); return nil, nil },
		followersFn:   func(context.Context, uint) ([]models.User, error) { fail("Followers"); return nil, nil },
		countsFn:      func(context.Context, uint) (int64, int64, error) { fail("Counts"); return 0, 0, nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}
