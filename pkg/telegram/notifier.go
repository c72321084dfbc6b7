package telegram

import (
	"context"
	"strconv"

	"ticker-screener/config"
	"ticker-screener/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier pushes screener summaries to a fixed Telegram chat. Sends are
// rate limited so a large watchlist cannot trip the Bot API flood limits.
type Notifier struct {
	cfg     *config.TelegramConfig
	log     *logger.Logger
	bot     *telebot.Bot
	limiter *rate.Limiter
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *Notifier {
	return &Notifier{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxRequestPerSecond), cfg.MaxRequestPerSecond),
	}
}

// Send delivers a Markdown message to the configured chat.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	chatID, err := strconv.ParseInt(n.cfg.ChatID, 10, 64)
	if err != nil {
		return err
	}

	_, err = n.bot.Send(telebot.ChatID(chatID), message, &telebot.SendOptions{
		ParseMode: telebot.ModeMarkdown,
	})
	if err != nil {
		n.log.Error("Failed to send telegram message", logger.ErrorField(err))
	}
	return err
}
