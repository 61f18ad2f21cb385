package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

type NotificationService struct {
	notifications repository.NotificationRepository
	log           *zap.SugaredLogger
}

func NewNotificationService(notifications repository.NotificationRepository, log *zap.SugaredLogger) *NotificationService {
	return &NotificationService{notifications: notifications, log: log}
}

// Notify records a notification for recipient. Notifications are not critical:
// a write failure is logged and never fails the triggering operation.
func (s *NotificationService) Notify(ctx context.Context, recipient primitive.ObjectID, kind models.NotificationType, relatedUser, relatedPost *primitive.ObjectID) {
	n := models.Notification{
		Recipient:   recipient,
		Type:        kind,
		RelatedUser: relatedUser,
		RelatedPost: relatedPost,
	}
	if err := s.notifications.Insert(ctx, &n); err != nil {
		s.log.Warnw("failed to create notification", "type", kind, "error", err)
	}
}

func (s *NotificationService) List(ctx context.Context, recipient primitive.ObjectID, page, limit int) ([]models.Notification, bool, error) {
	page, limit = clampPage(page, limit)
	notifications, err := s.notifications.ListForRecipient(ctx, recipient, page, limit)
	if err != nil {
		return nil, false, err
	}
	return notifications, len(notifications) == limit, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipient primitive.ObjectID) error {
	ok, err := s.notifications.MarkRead(ctx, id, recipient)
	if err != nil {
		return err
	}
	if !ok {
		return lib.NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, id, recipient primitive.ObjectID) error {
	ok, err := s.notifications.Delete(ctx, id, recipient)
	if err != nil {
		return err
	}
	if !ok {
		return lib.NotFound("notification not found")
	}
	return nil
}
