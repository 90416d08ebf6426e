// Package notify forwards new submissions to admin Telegram chats.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the bot API used here
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends a plain text message to every admin chat
type Telegram struct {
	bot   Sender
	chats []int64
}

// NewTelegram connects a bot. It fails when the token is rejected.
func NewTelegram(token string, adminIDs map[int64]bool) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return NewWithSender(bot, adminIDs), nil
}

func NewWithSender(bot Sender, adminIDs map[int64]bool) *Telegram {
	chats := make([]int64, 0, len(adminIDs))
	for id, ok := range adminIDs {
		if ok {
			chats = append(chats, id)
		}
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i] < chats[j] })
	return &Telegram{bot: bot, chats: chats}
}

// Notify tries every chat and joins the failures
func (t *Telegram) Notify(ctx context.Context, text string) error {
	var errs []error
	for _, chatID := range t.chats {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}
