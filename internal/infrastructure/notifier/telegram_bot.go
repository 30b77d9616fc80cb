package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"scratch_tracker/internal/domain/entity"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run consumes alerts until the channel closes or the context ends.
func (b *TelegramBot) Run(ctx context.Context, alerts <-chan entity.Alert) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case alert, ok := <-alerts:
			if !ok {
				return nil
			}

			if err := b.SendAlert(ctx, alert); err != nil {
				logger(ctx).Error("failed to send alert", "error", err)
			}
		}
	}
}

func (b *TelegramBot) SendAlert(ctx context.Context, alert entity.Alert) error {
	var text string

	switch alert.Kind {
	case entity.AlertKindNewGame:
		text = fmt.Sprintf(
			"🎫 <b>New scratcher on the index</b>\n\n"+
				"<b>Game:</b> #%s %s\n"+
				"<b>Price:</b> $%.2f\n"+
				"<b>Top prize:</b> $%.0f (%d remaining)",
			alert.GameNumber,
			alert.Name,
			alert.Price,
			alert.TopPrize,
			alert.TopPrizesRemaining,
		)
	case entity.AlertKindTopPrizeDrop:
		text = fmt.Sprintf(
			"🏁 <b>Top prizes gone</b>\n\n"+
				"<b>Game:</b> #%s %s\n"+
				"<b>Top prize:</b> $%.0f\n"+
				"<b>Remaining:</b> %d → 0",
			alert.GameNumber,
			alert.Name,
			alert.TopPrize,
			alert.PreviousRemaining,
		)
	default:
		return fmt.Errorf("unknown alert kind %q", alert.Kind)
	}

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain text message, used for the startup check.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)

	return err
}
