package repository

import (
	"context"
	"testing"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementRepository_FanOut(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Announcement{
		Title:     "Inventory freeze",
		Content:   "No stock movements after 5pm Friday.",
		Date:      time.Date(2024, 9, 6, 0, 0, 0, 0, time.UTC),
		CreatedBy: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	require.NoError(t, repo.AttachUsers(ctx, created.ID, []int64{10, 11, 12}))

	t.Run("every addressee starts unread", func(t *testing.T) {
		for _, userID := range []int64{10, 11, 12} {
			count, err := repo.UnreadCount(ctx, userID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		}
	})

	t.Run("list joins the read flag", func(t *testing.T) {
		views, total, err := repo.ListForUser(ctx, 10, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, views, 1)
		assert.Equal(t, "Inventory freeze", views[0].Title)
		assert.False(t, views[0].IsRead)
	})

	t.Run("non-addressee sees nothing", func(t *testing.T) {
		views, total, err := repo.ListForUser(ctx, 99, 0, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, views)
	})

	t.Run("mark read is per user", func(t *testing.T) {
		require.NoError(t, repo.MarkRead(ctx, 10, created.ID))

		count, err := repo.UnreadCount(ctx, 10)
		require.NoError(t, err)
		assert.Zero(t, count)

		count, err = repo.UnreadCount(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		views, _, err := repo.ListForUser(ctx, 10, 0, 0)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.True(t, views[0].IsRead)
	})

	t.Run("mark read without pivot row", func(t *testing.T) {
		err := repo.MarkRead(ctx, 99, created.ID)
		assert.ErrorIs(t, err, ErrAnnouncementNotFound)
	})

	t.Run("empty attach is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.AttachUsers(ctx, created.ID, nil))
	})
}

func TestAnnouncementRepository_Delete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Announcement{
		Title:     "Obsolete",
		Content:   "To be removed.",
		Date:      time.Now(),
		CreatedBy: 1,
	})
	require.NoError(t, err)
	require.NoError(t, repo.AttachUsers(ctx, created.ID, []int64{10, 11}))

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	var count int64
	err = db.Read(ctx).Model(&UserAnnouncementEntity{}).
		Where("announcement_id = ?", created.ID).
		Count(&count).Error
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(ctx, 999), ErrAnnouncementNotFound)
}

func TestChatNotificationRepository(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewChatNotificationRepository(db)
	ctx := context.Background()

	t.Run("create and count unread", func(t *testing.T) {
		for chatID := int64(1); chatID <= 3; chatID++ {
			_, err := repo.Create(ctx, &model.ChatNotification{UserID: 5, ChatID: chatID})
			require.NoError(t, err)
		}

		count, err := repo.UnreadCount(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("list newest first", func(t *testing.T) {
		notifications, total, err := repo.ListForUser(ctx, 5, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, notifications, 2)
		assert.Equal(t, int64(3), notifications[0].ChatID)
	})

	t.Run("mark read scoped to owner", func(t *testing.T) {
		notifications, _, err := repo.ListForUser(ctx, 5, 1, 0)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		id := notifications[0].ID

		// someone else's id does not decrement the owner's count
		err = repo.MarkRead(ctx, 999, id)
		assert.ErrorIs(t, err, ErrChatNotificationNotFound)

		require.NoError(t, repo.MarkRead(ctx, 5, id))

		count, err := repo.UnreadCount(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
