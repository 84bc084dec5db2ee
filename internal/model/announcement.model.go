package model

import (
	"errors"
	"time"
)

type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (Announcement) TableName() string { return "announcements" }

// UserAnnouncement is the per-user pivot row carrying the read flag.
type UserAnnouncement struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"user_id"`
	AnnouncementID int64 `json:"announcement_id"`
	IsRead         bool  `json:"is_read"`
}

func (UserAnnouncement) TableName() string { return "user_announcements" }

// UserAnnouncementView is an announcement joined with the caller's read flag.
type UserAnnouncementView struct {
	Announcement
	IsRead bool `json:"is_read"`
}

type AnnouncementCreateRequest struct {
	Title     string
	Content   string
	Date      time.Time
	CreatedBy int64
	// UserIDs limits the fan-out. Empty means every user.
	UserIDs []int64
}

func (p AnnouncementCreateRequest) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

type ChatNotification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ChatID    int64     `json:"chat_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatNotification) TableName() string { return "chat_notifications" }

type ChatNotificationCreateRequest struct {
	UserID int64 `json:"user_id"`
	ChatID int64 `json:"chat_id"`
}

func (p ChatNotificationCreateRequest) Validate() error {
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if p.ChatID == 0 {
		return errors.New("chat_id is required")
	}
	return nil
}
