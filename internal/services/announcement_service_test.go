package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/branch-backoffice/internal/broadcast"
	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/queue"
	"github.com/nimasrn/branch-backoffice/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupNotifyQueue(t *testing.T) (*miniredis.Miniredis, *queue.Queue) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	connName := t.Name() + "-" + mr.Addr()
	adapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	q, err := queue.NewQueue(adapter, queue.QueueConfig{
		Name:          "notifications",
		ConsumerGroup: "notifier",
	})
	require.NoError(t, err)
	return mr, q
}

func TestAnnouncementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit addressees", func(t *testing.T) {
		announcementRepo := new(MockAnnouncementRepository)
		chatRepo := new(MockChatNotificationRepository)
		userRepo := new(MockUserRepository)
		publisher := new(MockPublisher)
		service := NewAnnouncementService(announcementRepo, chatRepo, userRepo, nil, publisher)

		req := model.AnnouncementCreateRequest{
			Title:     "Inventory freeze",
			Content:   "No stock movements after 5pm Friday.",
			CreatedBy: 1,
			UserIDs:   []int64{10, 11},
		}

		announcementRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		announcementRepo.On("Create", ctx, mock.Anything).
			Return(&model.Announcement{ID: 1, Title: req.Title, Content: req.Content}, nil)
		announcementRepo.On("AttachUsers", ctx, int64(1), []int64{10, 11}).Return(nil)
		publisher.On("Publish", ctx, broadcast.ChannelAnnouncements, broadcast.EventNewAnnouncement,
			broadcast.AnnouncementPayload{ID: 1, Title: req.Title, Content: req.Content}).Return(nil)

		created, err := service.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)

		// the addressee list was explicit, so no lookup of everyone
		userRepo.AssertNotCalled(t, "ListIDs", mock.Anything)
		announcementRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("empty addressees fan out to everyone", func(t *testing.T) {
		announcementRepo := new(MockAnnouncementRepository)
		chatRepo := new(MockChatNotificationRepository)
		userRepo := new(MockUserRepository)
		publisher := new(MockPublisher)
		service := NewAnnouncementService(announcementRepo, chatRepo, userRepo, nil, publisher)

		userRepo.On("ListIDs", ctx).Return([]int64{1, 2, 3}, nil)
		announcementRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		announcementRepo.On("Create", ctx, mock.Anything).Return(&model.Announcement{ID: 2}, nil)
		announcementRepo.On("AttachUsers", ctx, int64(2), []int64{1, 2, 3}).Return(nil)
		publisher.On("Publish", ctx, broadcast.ChannelAnnouncements, broadcast.EventNewAnnouncement, mock.Anything).Return(nil)

		_, err := service.Create(ctx, model.AnnouncementCreateRequest{
			Title:     "All hands",
			Content:   "Short meeting at opening.",
			CreatedBy: 1,
		})
		require.NoError(t, err)

		userRepo.AssertExpectations(t)
		announcementRepo.AssertExpectations(t)
	})

	t.Run("delivery job lands on the queue", func(t *testing.T) {
		mr, notifyQueue := setupNotifyQueue(t)
		defer mr.Close()

		announcementRepo := new(MockAnnouncementRepository)
		chatRepo := new(MockChatNotificationRepository)
		userRepo := new(MockUserRepository)
		publisher := new(MockPublisher)
		service := NewAnnouncementService(announcementRepo, chatRepo, userRepo, notifyQueue, publisher)

		announcementRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		announcementRepo.On("Create", ctx, mock.Anything).Return(&model.Announcement{ID: 3}, nil)
		announcementRepo.On("AttachUsers", ctx, int64(3), []int64{10}).Return(nil)
		publisher.On("Publish", ctx, broadcast.ChannelAnnouncements, broadcast.EventNewAnnouncement, mock.Anything).Return(nil)

		_, err := service.Create(ctx, model.AnnouncementCreateRequest{
			Title:     "Queued",
			Content:   "Delivery goes async.",
			CreatedBy: 1,
			UserIDs:   []int64{10},
		})
		require.NoError(t, err)

		stats, err := notifyQueue.GetStats()
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.TotalMessages)
	})

	t.Run("title required", func(t *testing.T) {
		service := NewAnnouncementService(new(MockAnnouncementRepository), new(MockChatNotificationRepository), new(MockUserRepository), nil, new(MockPublisher))

		_, err := service.Create(ctx, model.AnnouncementCreateRequest{Content: "body only"})
		assert.Error(t, err)
	})
}

func TestAnnouncementService_ChatNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("record chat notification", func(t *testing.T) {
		announcementRepo := new(MockAnnouncementRepository)
		chatRepo := new(MockChatNotificationRepository)
		service := NewAnnouncementService(announcementRepo, chatRepo, new(MockUserRepository), nil, new(MockPublisher))

		chatRepo.On("Create", ctx, mock.MatchedBy(func(n *model.ChatNotification) bool {
			return n.UserID == 5 && n.ChatID == 99 && !n.IsRead
		})).Return(&model.ChatNotification{ID: 1, UserID: 5, ChatID: 99}, nil)

		created, err := service.RecordChatNotification(ctx, model.ChatNotificationCreateRequest{UserID: 5, ChatID: 99})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		chatRepo.AssertExpectations(t)
	})

	t.Run("missing chat id rejected", func(t *testing.T) {
		service := NewAnnouncementService(new(MockAnnouncementRepository), new(MockChatNotificationRepository), new(MockUserRepository), nil, new(MockPublisher))

		_, err := service.RecordChatNotification(ctx, model.ChatNotificationCreateRequest{UserID: 5})
		assert.Error(t, err)
	})

	t.Run("unread count passthrough", func(t *testing.T) {
		chatRepo := new(MockChatNotificationRepository)
		service := NewAnnouncementService(new(MockAnnouncementRepository), chatRepo, new(MockUserRepository), nil, new(MockPublisher))

		chatRepo.On("UnreadCount", ctx, int64(5)).Return(int64(4), nil)

		count, err := service.UnreadChatCount(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}
