package setup

import (
	"github.com/jasu-us/business-card/cmd/bot"
	"github.com/jasu-us/business-card/internal/adapters/controller/telegram/handlers/start"
	"github.com/spf13/viper"
	"gopkg.in/telebot.v3/middleware"
)

func Setup(b *bot.Bot) {
	startHandler := start.New(b)

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(b.Layout.Middleware("en"))
	b.Use(middleware.AutoRespond())

	b.Handle("/start", startHandler.Start)
}
