package repository

import (
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type AnnouncementEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Title     string    `db:"title"      gorm:"column:title;not null"`
	Content   string    `db:"content"    gorm:"column:content;not null"`
	Date      time.Time `db:"date"       gorm:"column:date;not null"`
	CreatedBy int64     `db:"created_by" gorm:"column:created_by;not null"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (AnnouncementEntity) TableName() string {
	return "announcements"
}

type UserAnnouncementEntity struct {
	ID             int64               `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	UserID         int64               `db:"user_id"         gorm:"column:user_id;not null;index:idx_user_announcements_user"`
	AnnouncementID int64               `db:"announcement_id" gorm:"column:announcement_id;not null;index"`
	Announcement   *AnnouncementEntity `gorm:"foreignKey:AnnouncementID;references:ID;constraint:OnDelete:CASCADE"`
	IsRead         bool                `db:"is_read"         gorm:"column:is_read;not null;default:false"`
}

func (UserAnnouncementEntity) TableName() string {
	return "user_announcements"
}

type ChatNotificationEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `db:"user_id"    gorm:"column:user_id;not null;index"`
	User      *UserEntity `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	ChatID    int64     `db:"chat_id"    gorm:"column:chat_id;not null;index"`
	IsRead    bool      `db:"is_read"    gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (ChatNotificationEntity) TableName() string {
	return "chat_notifications"
}

func toAnnouncementEntity(m *model.Announcement) *AnnouncementEntity {
	if m == nil {
		return nil
	}
	return &AnnouncementEntity{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

func toAnnouncementModel(e *AnnouncementEntity) *model.Announcement {
	if e == nil {
		return nil
	}
	return &model.Announcement{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		Date:      e.Date,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}

func toChatNotificationModel(e *ChatNotificationEntity) *model.ChatNotification {
	if e == nil {
		return nil
	}
	return &model.ChatNotification{
		ID:        e.ID,
		UserID:    e.UserID,
		ChatID:    e.ChatID,
		IsRead:    e.IsRead,
		CreatedAt: e.CreatedAt,
	}
}

func toChatNotificationModels(entities []*ChatNotificationEntity) []*model.ChatNotification {
	if entities == nil {
		return nil
	}
	models := make([]*model.ChatNotification, len(entities))
	for i, e := range entities {
		models[i] = toChatNotificationModel(e)
	}
	return models
}
