package domain

import "time"

type Notification struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"user_id"`
	Text      string    `json:"notification_text"`
	Timestamp time.Time `json:"timestamp"`
}
