package publish

import (
	"context"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
)

// Telegram publishes to a channel through the Bot API. The chat ID can
// be a numeric ID or an "@channelname" handle.
type Telegram struct {
	bot    *tgbot.Bot
	chatID string
	log    *slog.Logger
}

func NewTelegram(token, chatID string, log *slog.Logger) (*Telegram, error) {
	b, err := tgbot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &Telegram{
		bot:    b,
		chatID: chatID,
		log:    log,
	}, nil
}

func (t *Telegram) Post(ctx context.Context, text string) Result {
	msg, err := t.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return Result{Platform: "telegram", OK: false, Body: err.Error()}
	}

	return Result{
		Platform: "telegram",
		OK:       true,
		Body:     fmt.Sprintf("message_id=%d", msg.ID),
	}
}
