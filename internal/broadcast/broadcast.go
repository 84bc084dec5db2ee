package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nimasrn/branch-backoffice/pkg/prom"
	"github.com/nimasrn/branch-backoffice/pkg/redis"
)

// Channel and event names are part of the wire contract with the
// dashboard clients. Renaming one silently orphans its subscribers.
const (
	ChannelUserStatus    = "user-status"
	ChannelAnnouncements = "announcements"
	ChannelDailySales    = "daily-sales"

	EventUserStatusUpdated = "UserStatusUpdated"
	EventNewAnnouncement   = "new-announcement"
	EventNewSalesUpdate    = "new-sales-update"
)

// Publisher pushes domain events at dashboard subscribers. Implementations
// must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
}

type envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type redisPublisher struct {
	adapter redis.RedisAdapter
}

func NewRedisPublisher(adapter redis.RedisAdapter) Publisher {
	return &redisPublisher{adapter: adapter}
}

func (p *redisPublisher) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	body, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		prom.IncBroadcastPublishFailure(channel)
		return fmt.Errorf("marshal %s event: %w", event, err)
	}

	if err := p.adapter.Publish(ctx, channel, body); err != nil {
		prom.IncBroadcastPublishFailure(channel)
		return fmt.Errorf("publish to %s: %w", channel, err)
	}

	prom.IncBroadcastPublished(channel)
	return nil
}

// UserStatusPayload is broadcast on login and logout. Status is true
// while the user is online.
type UserStatusPayload struct {
	UserID int64 `json:"userId"`
	Status bool  `json:"status"`
}

// AnnouncementPayload is broadcast when an admin posts an announcement.
type AnnouncementPayload struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SalesUpdatePayload tells dashboards which day's numbers moved.
type SalesUpdatePayload struct {
	Date string `json:"date"`
}
