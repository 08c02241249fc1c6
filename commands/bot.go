package commands

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"proptech-analytics/bot"
	"proptech-analytics/chat"
)

func BotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			rt := bootstrap(cmd, false)
			defer rt.Close()
			if rt.cfg.TelegramBotToken == "" {
				return errors.New("TELEGRAM_BOT_TOKEN is not set")
			}

			responder := bot.NewResponder(rt.app, chat.NewDispatcher(rt.app, rt.logger))
			telegram, err := bot.NewTelegramBot(rt.cfg.TelegramBotToken, responder, rt.logger)
			if err != nil {
				return err
			}
			telegram.Start(ctx)
			return nil
		},
	}
}
