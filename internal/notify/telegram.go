package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends due-review reminders through the Telegram Bot API.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api}, nil
}

// SendReminder tells a linked chat how many reviews are waiting today.
func (n *TelegramNotifier) SendReminder(chatID int64, dueCount int) error {
	text := fmt.Sprintf("You have %d problem reviews due today. Time to practice!", dueCount)
	if dueCount == 1 {
		text = "You have 1 problem review due today. Time to practice!"
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
