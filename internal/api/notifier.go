package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"crack-detector/internal/domain/port"
)

// Notifier отправляет сводки конвейера в один Telegram-чат
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier создаёт уведомитель с API по умолчанию
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, tgbotapi.APIEndpoint, chatID, &http.Client{})
}

// NewNotifierWithEndpoint создаёт уведомитель с произвольным адресом Bot API
func NewNotifierWithEndpoint(token, endpoint string, chatID int64, client tgbotapi.HTTPClient) (*Notifier, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Notifier{
		api:    api,
		chatID: chatID,
	}, nil
}

// Notify отправляет текстовое сообщение
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

var _ port.Notifier = (*Notifier)(nil)
