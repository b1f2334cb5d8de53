package database

import (
	"context"
	"fmt"

	"github.com/example/codereps/pkg/models"
)

// SaveNotificationSettings links (or re-links) a user's Telegram chat for
// due-review reminders.
func (s *Store) SaveNotificationSettings(ctx context.Context, ns *models.NotificationSettings) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO notification_settings (user_id, telegram_chat_id, enabled, notify_hour)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			telegram_chat_id = EXCLUDED.telegram_chat_id,
			enabled = EXCLUDED.enabled,
			notify_hour = EXCLUDED.notify_hour
	`, ns.UserID, ns.TelegramChatID, ns.Enabled, ns.NotifyHour)
	if err != nil {
		return fmt.Errorf("failed to save notification settings: %w", err)
	}
	return nil
}

// DeleteNotificationSettings removes a user's reminder link. Deleting a
// user with no link is a no-op.
func (s *Store) DeleteNotificationSettings(ctx context.Context, userID string) error {
	_, err := s.q.ExecContext(ctx,
		"DELETE FROM notification_settings WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification settings: %w", err)
	}
	return nil
}

// NotificationsForHour returns every enabled reminder link whose preferred
// hour matches the given UTC hour.
func (s *Store) NotificationsForHour(ctx context.Context, hour int) ([]models.NotificationSettings, error) {
	settings := []models.NotificationSettings{}
	err := s.q.SelectContext(ctx, &settings, `
		SELECT user_id, telegram_chat_id, enabled, notify_hour
		FROM notification_settings
		WHERE enabled AND notify_hour = $1
	`, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	return settings, nil
}
