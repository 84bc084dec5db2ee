package services

import (
	"context"
	"fmt"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/broadcast"
	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/queue"
	"github.com/nimasrn/branch-backoffice/pkg/logger"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) (*model.Announcement, error)
	AttachUsers(ctx context.Context, announcementID int64, userIDs []int64) error
	GetByID(ctx context.Context, id int64) (*model.Announcement, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.UserAnnouncementView, int64, error)
	MarkRead(ctx context.Context, userID, announcementID int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ChatNotificationRepository interface {
	Create(ctx context.Context, n *model.ChatNotification) (*model.ChatNotification, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.ChatNotification, int64, error)
	MarkRead(ctx context.Context, userID, id int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type AnnouncementService struct {
	announcementRepo AnnouncementRepository
	chatRepo         ChatNotificationRepository
	userRepo         UserRepository
	notifyQueue      *queue.Queue
	publisher        broadcast.Publisher
}

func NewAnnouncementService(announcementRepo AnnouncementRepository, chatRepo ChatNotificationRepository, userRepo UserRepository, notifyQueue *queue.Queue, publisher broadcast.Publisher) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		chatRepo:         chatRepo,
		userRepo:         userRepo,
		notifyQueue:      notifyQueue,
		publisher:        publisher,
	}
}

// Create stores the announcement and fans an unread pivot row out to every
// addressee in one transaction. An empty addressee list means everyone.
// The dashboard broadcast and the per-user delivery job run after commit
// and never fail the request.
func (s *AnnouncementService) Create(ctx context.Context, p model.AnnouncementCreateRequest) (*model.Announcement, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	userIDs := p.UserIDs
	if len(userIDs) == 0 {
		ids, err := s.userRepo.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list addressees: %w", err)
		}
		userIDs = ids
	}

	var created *model.Announcement
	err := s.announcementRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.announcementRepo.Create(ctx, &model.Announcement{
			Title:     p.Title,
			Content:   p.Content,
			Date:      p.Date,
			CreatedBy: p.CreatedBy,
		})
		if err != nil {
			return fmt.Errorf("create announcement: %w", err)
		}
		if err := s.announcementRepo.AttachUsers(ctx, created.ID, userIDs); err != nil {
			return fmt.Errorf("attach users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishAnnouncement(ctx, created)

	if s.notifyQueue != nil {
		_, err = s.notifyQueue.PublishJSON(ctx, model.NotificationJob{
			Kind:           model.NotificationKindAnnouncement,
			AnnouncementID: created.ID,
			UserIDs:        userIDs,
		}, map[string]string{"kind": model.NotificationKindAnnouncement})
		if err != nil {
			logger.Error("announcement fan-out enqueue failed", "announcementId", created.ID, "error", err)
		}
	}

	return created, nil
}

func (s *AnnouncementService) Get(ctx context.Context, id int64) (*model.Announcement, error) {
	return s.announcementRepo.GetByID(ctx, id)
}

func (s *AnnouncementService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.UserAnnouncementView, int64, error) {
	return s.announcementRepo.ListForUser(ctx, userID, limit, offset)
}

func (s *AnnouncementService) MarkRead(ctx context.Context, userID, announcementID int64) error {
	return s.announcementRepo.MarkRead(ctx, userID, announcementID)
}

func (s *AnnouncementService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.announcementRepo.UnreadCount(ctx, userID)
}

func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	return s.announcementRepo.Delete(ctx, id)
}

// RecordChatNotification stores an unread chat pointer for the user and
// queues the delivery job.
func (s *AnnouncementService) RecordChatNotification(ctx context.Context, p model.ChatNotificationCreateRequest) (*model.ChatNotification, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.chatRepo.Create(ctx, &model.ChatNotification{
		UserID: p.UserID,
		ChatID: p.ChatID,
	})
	if err != nil {
		return nil, err
	}

	if s.notifyQueue != nil {
		_, err = s.notifyQueue.PublishJSON(ctx, model.NotificationJob{
			Kind:   model.NotificationKindChat,
			UserID: created.UserID,
			ChatID: created.ChatID,
		}, map[string]string{"kind": model.NotificationKindChat})
		if err != nil {
			logger.Error("chat notification enqueue failed", "userId", created.UserID, "error", err)
		}
	}

	return created, nil
}

func (s *AnnouncementService) ListChatNotifications(ctx context.Context, userID int64, limit, offset int) ([]*model.ChatNotification, int64, error) {
	return s.chatRepo.ListForUser(ctx, userID, limit, offset)
}

func (s *AnnouncementService) MarkChatNotificationRead(ctx context.Context, userID, id int64) error {
	return s.chatRepo.MarkRead(ctx, userID, id)
}

func (s *AnnouncementService) UnreadChatCount(ctx context.Context, userID int64) (int64, error) {
	return s.chatRepo.UnreadCount(ctx, userID)
}

func (s *AnnouncementService) publishAnnouncement(ctx context.Context, a *model.Announcement) {
	err := s.publisher.Publish(ctx, broadcast.ChannelAnnouncements, broadcast.EventNewAnnouncement, broadcast.AnnouncementPayload{
		ID:      a.ID,
		Title:   a.Title,
		Content: a.Content,
	})
	if err != nil {
		logger.Error("announcement broadcast failed", "announcementId", a.ID, "error", err)
	}
}
