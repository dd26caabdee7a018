package repository

import (
	"context"
	"errors"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	Delete(ctx context.Context, id uint) error
	GetByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	HomeTimeline(ctx context.Context, userID uint, limit int) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		if isCheckViolation(err) {
			return models.NewValidationError("Message text must be between 1 and 140 characters")
		}
		if isForeignKeyViolation(err) {
			return models.NewValidationError("Message owner does not exist")
		}
		if isNotNullViolation(err) {
			return models.NewValidationError("Message text is required")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Message{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}

func (r *messageRepository) GetByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// HomeTimeline returns the user's own messages plus those of every user
// they follow, newest first. Messages from users the viewer does not
// follow never appear.
func (r *messageRepository) HomeTimeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	followedIDs := r.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID, followedIDs).
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
