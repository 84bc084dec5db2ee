package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnnouncementService struct {
	mock.Mock
}

func (m *MockAnnouncementService) Create(ctx context.Context, p model.AnnouncementCreateRequest) (*model.Announcement, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *MockAnnouncementService) Get(ctx context.Context, id int64) (*model.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *MockAnnouncementService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.UserAnnouncementView, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.UserAnnouncementView), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnnouncementService) MarkRead(ctx context.Context, userID, announcementID int64) error {
	args := m.Called(ctx, userID, announcementID)
	return args.Error(0)
}

func (m *MockAnnouncementService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnnouncementService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnnouncementService) RecordChatNotification(ctx context.Context, p model.ChatNotificationCreateRequest) (*model.ChatNotification, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatNotification), args.Error(1)
}

func (m *MockAnnouncementService) ListChatNotifications(ctx context.Context, userID int64, limit, offset int) ([]*model.ChatNotification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.ChatNotification), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnnouncementService) MarkChatNotificationRead(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockAnnouncementService) UnreadChatCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestAnnouncementHandler_Create(t *testing.T) {
	t.Run("creator taken from session", func(t *testing.T) {
		svc := new(MockAnnouncementService)
		handler := NewAnnouncementHandler(svc)

		reqBody := announcementRequest{
			Title:   "Inventory count",
			Content: "Full count this Friday after closing.",
			UserIDs: []int64{2, 3},
		}
		bodyBytes, _ := json.Marshal(reqBody)

		created := &model.Announcement{ID: 9, Title: "Inventory count", CreatedBy: 1}
		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.AnnouncementCreateRequest) bool {
			return p.CreatedBy == 1 && len(p.UserIDs) == 2
		})).Return(created, nil)

		ctx := authedContext("POST", "/announcements", bodyBytes, adminUser(1))
		handler.Create(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockAnnouncementService)
		handler := NewAnnouncementHandler(svc)

		ctx := authedContext("POST", "/announcements", []byte("invalid"), adminUser(1))
		handler.Create(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestAnnouncementHandler_ListForUser(t *testing.T) {
	svc := new(MockAnnouncementService)
	handler := NewAnnouncementHandler(svc)

	items := []*model.UserAnnouncementView{
		{Announcement: model.Announcement{ID: 9, Title: "Inventory count"}, IsRead: false},
		{Announcement: model.Announcement{ID: 8, Title: "New price list"}, IsRead: true},
	}
	svc.On("ListForUser", mock.Anything, int64(7), 20, 0).Return(items, int64(2), nil)

	ctx := authedContext("GET", "/announcements?limit=20", nil, branchUser(7, 2))
	handler.ListForUser(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response announcementListResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.Len(t, response.Items, 2)
	assert.False(t, response.Items[0].IsRead)
	assert.True(t, response.Items[1].IsRead)

	svc.AssertExpectations(t)
}

func TestAnnouncementHandler_MarkRead(t *testing.T) {
	t.Run("marks for session user", func(t *testing.T) {
		svc := new(MockAnnouncementService)
		handler := NewAnnouncementHandler(svc)

		svc.On("MarkRead", mock.Anything, int64(7), int64(9)).Return(nil)

		ctx := authedContext("POST", "/announcements/9/read", nil, branchUser(7, 2))
		setPathParam(ctx, "id", "9")
		handler.MarkRead(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("not targeted at this user", func(t *testing.T) {
		svc := new(MockAnnouncementService)
		handler := NewAnnouncementHandler(svc)

		svc.On("MarkRead", mock.Anything, int64(7), int64(9)).Return(repository.ErrAnnouncementNotFound)

		ctx := authedContext("POST", "/announcements/9/read", nil, branchUser(7, 2))
		setPathParam(ctx, "id", "9")
		handler.MarkRead(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestAnnouncementHandler_UnreadCount(t *testing.T) {
	svc := new(MockAnnouncementService)
	handler := NewAnnouncementHandler(svc)

	svc.On("UnreadCount", mock.Anything, int64(7)).Return(int64(3), nil)

	ctx := authedContext("GET", "/announcements/unread-count", nil, branchUser(7, 2))
	handler.UnreadCount(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response unreadCountResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.Equal(t, int64(3), response.Unread)

	svc.AssertExpectations(t)
}

func TestAnnouncementHandler_Delete(t *testing.T) {
	svc := new(MockAnnouncementService)
	handler := NewAnnouncementHandler(svc)

	svc.On("Delete", mock.Anything, int64(9)).Return(nil)

	ctx := authedContext("DELETE", "/announcements/9", nil, adminUser(1))
	setPathParam(ctx, "id", "9")
	handler.Delete(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestAnnouncementHandler_ChatNotifications(t *testing.T) {
	t.Run("record", func(t *testing.T) {
		svc := new(MockAnnouncementService)
		handler := NewAnnouncementHandler(svc)

		bodyBytes, _ := json.Marshal(model.ChatNotificationCreateRequest{UserID: 7, ChatID: 33})

		svc.On("RecordChatNotification", mock.Anything, mock.MatchedBy(func(p model.ChatNotificationCreateRequest) bool {
			return p.UserID == 7 && p.ChatID == 33
		})).Return(&model.ChatNotification{ID: 2, UserID: 7, ChatID: 33}, nil)

		ctx := authedContext("POST", "/notifications/chat", bodyBytes, branchUser(5, 2))
		handler.RecordChatNotification(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("list for session user", func(t *testing.T) {
		svc := new(MockAnnouncementService)
		handler := NewAnnouncementHandler(svc)

		svc.On("ListChatNotifications", mock.Anything, int64(7), 0, 0).
			Return([]*model.ChatNotification{{ID: 2, ChatID: 33}}, int64(1), nil)

		ctx := authedContext("GET", "/notifications/chat", nil, branchUser(7, 2))
		handler.ListChatNotifications(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response chatNotificationListResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, int64(1), response.Total)
	})

	t.Run("mark read", func(t *testing.T) {
		svc := new(MockAnnouncementService)
		handler := NewAnnouncementHandler(svc)

		svc.On("MarkChatNotificationRead", mock.Anything, int64(7), int64(2)).Return(nil)

		ctx := authedContext("POST", "/notifications/chat/2/read", nil, branchUser(7, 2))
		setPathParam(ctx, "id", "2")
		handler.MarkChatNotificationRead(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("unread count", func(t *testing.T) {
		svc := new(MockAnnouncementService)
		handler := NewAnnouncementHandler(svc)

		svc.On("UnreadChatCount", mock.Anything, int64(7)).Return(int64(1), nil)

		ctx := authedContext("GET", "/notifications/chat/unread-count", nil, branchUser(7, 2))
		handler.UnreadChatCount(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response unreadCountResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, int64(1), response.Unread)
	})
}
