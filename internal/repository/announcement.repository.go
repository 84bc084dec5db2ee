package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrAnnouncementNotFound     = errors.New("announcement not found")
	ErrChatNotificationNotFound = errors.New("chat notification not found")
)

type AnnouncementRepository struct {
	*pg.DB
}

func NewAnnouncementRepository(db *pg.DB) *AnnouncementRepository {
	return &AnnouncementRepository{
		db,
	}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) (*model.Announcement, error) {
	entity := toAnnouncementEntity(a)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toAnnouncementModel(entity), nil
}

// AttachUsers writes one unread pivot row per addressed user.
func (r *AnnouncementRepository) AttachUsers(ctx context.Context, announcementID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	pivots := make([]*UserAnnouncementEntity, len(userIDs))
	for i, id := range userIDs {
		pivots[i] = &UserAnnouncementEntity{
			UserID:         id,
			AnnouncementID: announcementID,
			IsRead:         false,
		}
	}
	return r.Write(ctx).WithContext(ctx).Create(&pivots).Error
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	var entity AnnouncementEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return toAnnouncementModel(&entity), nil
}

// ListForUser joins announcements with the caller's pivot read flag.
func (r *AnnouncementRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.UserAnnouncementView, int64, error) {
	base := r.Read(ctx).WithContext(ctx).
		Table("announcements AS a").
		Joins("JOIN user_announcements AS ua ON ua.announcement_id = a.id").
		Where("ua.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	type row struct {
		AnnouncementEntity
		IsRead bool `gorm:"column:is_read"`
	}
	var rows []*row
	err := base.
		Select("a.*, ua.is_read AS is_read").
		Order("a.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}

	views := make([]*model.UserAnnouncementView, len(rows))
	for i, rr := range rows {
		views[i] = &model.UserAnnouncementView{
			Announcement: *toAnnouncementModel(&rr.AnnouncementEntity),
			IsRead:       rr.IsRead,
		}
	}
	return views, total, nil
}

func (r *AnnouncementRepository) MarkRead(ctx context.Context, userID, announcementID int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&UserAnnouncementEntity{}).
		Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&UserAnnouncementEntity{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	if err := r.Write(ctx).WithContext(ctx).
		Where("announcement_id = ?", id).
		Delete(&UserAnnouncementEntity{}).Error; err != nil {
		return err
	}
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&AnnouncementEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

type ChatNotificationRepository struct {
	*pg.DB
}

func NewChatNotificationRepository(db *pg.DB) *ChatNotificationRepository {
	return &ChatNotificationRepository{
		db,
	}
}

func (r *ChatNotificationRepository) Create(ctx context.Context, n *model.ChatNotification) (*model.ChatNotification, error) {
	entity := &ChatNotificationEntity{
		UserID: n.UserID,
		ChatID: n.ChatID,
		IsRead: n.IsRead,
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toChatNotificationModel(entity), nil
}

func (r *ChatNotificationRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.ChatNotification, int64, error) {
	q := r.Read(ctx).WithContext(ctx).
		Model(&ChatNotificationEntity{}).
		Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var entities []*ChatNotificationEntity
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toChatNotificationModels(entities), total, nil
}

func (r *ChatNotificationRepository) MarkRead(ctx context.Context, userID, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ChatNotificationEntity{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChatNotificationNotFound
	}
	return nil
}

func (r *ChatNotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&ChatNotificationEntity{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
