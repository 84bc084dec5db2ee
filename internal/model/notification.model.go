package model

// NotificationJob is the queue payload for asynchronous per-user delivery.
// Announcement jobs carry the announcement id and its addressees; chat jobs
// carry the chat notification that was just stored.
type NotificationJob struct {
	Kind           string  `json:"kind"`
	AnnouncementID int64   `json:"announcement_id,omitempty"`
	UserIDs        []int64 `json:"user_ids,omitempty"`
	UserID         int64   `json:"user_id,omitempty"`
	ChatID         int64   `json:"chat_id,omitempty"`
}

const (
	NotificationKindAnnouncement = "announcement"
	NotificationKindChat         = "chat"
)
