// Package bot exposes the chat assistant over Telegram.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"proptech-analytics/chat"
	"proptech-analytics/services"
	"proptech-analytics/utils"
)

const replyTimeout = 15 * time.Second

// Responder turns Telegram commands and free text into reply text.
type Responder struct {
	app        *services.App
	dispatcher *chat.Dispatcher
}

func NewResponder(app *services.App, dispatcher *chat.Dispatcher) *Responder {
	return &Responder{app: app, dispatcher: dispatcher}
}

// Command answers /command with the given arguments.
func (r *Responder) Command(ctx context.Context, command, args string) string {
	switch command {
	case "start":
		return "Welcome to the Mumbai property assistant! Ask me about a locality, a loan or an investment. Use /help for examples."
	case "help":
		return "Available commands:\n" +
			"/start - Start the bot\n" +
			"/localities - List the localities with data\n" +
			"/help - Show this help message\n\n" +
			r.dispatcher.Handle(ctx, "help").Text
	case "localities":
		return r.localities()
	default:
		return "Unknown command. Use /help to see available commands."
	}
}

// Text answers a free-text message through the chat dispatcher.
func (r *Responder) Text(ctx context.Context, text string) string {
	return r.dispatcher.Handle(ctx, text).Text
}

func (r *Responder) localities() string {
	keys := r.app.Stats.Localities()
	if len(keys) == 0 {
		return "No locality data is loaded yet. Please try again later."
	}

	var b strings.Builder
	b.WriteString("Available localities:\n\n")
	for _, k := range keys {
		b.WriteString("• " + services.DisplayName(k) + "\n")
	}
	fmt.Fprintf(&b, "\n🕒 Last update: %s", r.app.Stats.Table().BuiltAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	bot       *tgbotapi.BotAPI
	responder *Responder
	logger    *utils.Logger
}

// NewTelegramBot creates a new Telegram bot handler
func NewTelegramBot(botToken string, responder *Responder, logger *utils.Logger) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramBot{bot: bot, responder: responder, logger: logger}, nil
}

// Start listens for messages until ctx is cancelled.
func (t *TelegramBot) Start(ctx context.Context) {
	t.logger.Info("[bot] Authorized on Telegram account %s", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()
	t.logger.Info("[bot] Listening for messages...")

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("[bot] Stopping")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			t.handleMessage(ctx, update.Message)
		}
	}
}

func (t *TelegramBot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	user := "unknown"
	if message.From != nil {
		user = message.From.UserName
	}
	t.logger.Debug("[bot] Message from %s: %s", user, message.Text)

	ctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	var text string
	if message.IsCommand() {
		text = t.responder.Command(ctx, message.Command(), message.CommandArguments())
	} else {
		text = t.responder.Text(ctx, message.Text)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("[bot] Error sending message to %s: %v", user, err)
	}
}
