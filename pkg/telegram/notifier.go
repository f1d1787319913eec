package telegram

import (
	"context"

	"commodity-index/config"
	"commodity-index/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier pushes operational summaries (daily index runs, alerts) to a
// configured chat. Disabled when no bot token is configured.
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

func (n *Notifier) Enabled() bool {
	return n.bot != nil && n.cfg.ChatID != 0
}

// Notify sends a message to the configured chat, respecting the global rate limit.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	if !n.Enabled() {
		return nil
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := n.bot.Send(&telebot.Chat{ID: n.cfg.ChatID}, message, telebot.ModeMarkdown)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram notification", logger.ErrorField(err))
	}
	return err
}
