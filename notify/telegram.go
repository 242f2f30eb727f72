package notify

import (
	"fmt"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends run summaries to a Telegram chat
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a Notifier from the TELEGRAM_BOT_TOKEN and
// TELEGRAM_CHAT_ID environment variables
func NewNotifier() (*Notifier, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	chatStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is not set")
	}
	chatID, err := strconv.ParseInt(chatStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	return &Notifier{bot: bot, chatID: chatID}, nil
}

// Send delivers a plain-text message to the configured chat
func (n *Notifier) Send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return nil
}
