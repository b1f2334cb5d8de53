package models

// NotificationSettings links a user to a Telegram chat for due-review
// reminders.
type NotificationSettings struct {
	UserID         string `json:"user_id" db:"user_id"`
	TelegramChatID int64  `json:"telegram_chat_id" db:"telegram_chat_id"`
	Enabled        bool   `json:"enabled" db:"enabled"`
	NotifyHour     int    `json:"notify_hour" db:"notify_hour"` // UTC hour, 0-23
}
