package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"warbler/internal/models"
	"warbler/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// CreateMessage posts a new message owned by userID. Text length is
// validated here and again by a CHECK constraint at the storage layer.
func (s *MessageService) CreateMessage(ctx context.Context, userID uint, text string) (*models.Message, error) {
	if text == "" {
		return nil, models.NewValidationError("Message text is required")
	}
	// The limit is characters, not bytes; multibyte text counts by rune
	// to match the length() semantics of the storage CHECK constraint.
	if utf8.RuneCountInString(text) > models.MaxMessageLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Message text must not exceed %d characters", models.MaxMessageLen))
	}

	message := &models.Message{
		Text:   text,
		UserID: userID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// DeleteMessage removes a message. Only the owner may delete it; any
// other requester gets an unauthorized error and the message persists.
func (s *MessageService) DeleteMessage(ctx context.Context, messageID, requesterID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID != requesterID {
		return models.NewUnauthorizedError("Only the owner can delete a message")
	}
	return s.messageRepo.Delete(ctx, messageID)
}

// HomeTimeline returns the viewer's own messages plus messages from
// everyone they follow, newest first.
func (s *MessageService) HomeTimeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.messageRepo.HomeTimeline(ctx, userID, limit)
}

func (s *MessageService) MessagesByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.messageRepo.GetByUserID(ctx, userID, limit)
}
