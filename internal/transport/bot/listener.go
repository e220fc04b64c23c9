package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const longPollTimeout = 30

// Listen крутит long polling до отмены контекста. Каждый апдейт
// обрабатывается в своей горутине: медленный поход в базу по одному чату не
// задерживает прием событий остальных чатов.
func Listen(ctx context.Context, api *tgbotapi.BotAPI, router *Router, l *logrus.Logger) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = longPollTimeout

	updates := api.GetUpdatesChan(updateConfig)
	l.WithField("component", "bot").Info("listening for updates")

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go router.HandleUpdate(ctx, update)
		}
	}
}
