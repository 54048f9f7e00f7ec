package bot

import (
	"fmt"
	"strings"

	"github.com/jasu-us/business-card/internal/adapters/config"
	"github.com/jasu-us/business-card/internal/adapters/database/file"
	"github.com/jasu-us/business-card/internal/domain/service"
	"github.com/jasu-us/business-card/pkg/logger"
	"github.com/jasu-us/business-card/pkg/logger/types"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
)

type Bot struct {
	*tele.Bot
	Layout    *layout.Layout
	People    *file.PersonStorage
	Style     qr.Style
	Logo      *qr.LogoAsset
	PublicURL string
	Logger    *types.Logger

	operatorChatID int64
	operatorLevel  zapcore.Level
}

func New(config *config.Config) (*Bot, error) {
	if config.Server.PublicURL == "" {
		return nil, fmt.Errorf("bot needs server.public-url to build card links")
	}

	lt, err := layout.New("telegram.yml")
	if err != nil {
		return nil, err
	}

	settings := lt.Settings()
	botLogger, err := logger.Named("bot")
	if err != nil {
		return nil, err
	}
	settings.OnError = func(err error, ctx tele.Context) {
		if ctx == nil || ctx.Sender() == nil {
			botLogger.Errorf("Error: %v", err)
			return
		}
		botLogger.Errorf("(user: %d) | Error: %v", ctx.Sender().ID, err)
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		return nil, err
	}

	if cmds := lt.Commands(); cmds != nil {
		if err = b.SetCommands(cmds); err != nil {
			return nil, err
		}
	}

	return &Bot{
		Bot:            b,
		Layout:         lt,
		People:         config.People,
		Style:          config.Style,
		Logo:           config.Logo,
		PublicURL:      strings.TrimRight(config.Server.PublicURL, "/"),
		Logger:         botLogger,
		operatorChatID: config.Bot.OperatorChatID,
		operatorLevel:  config.Bot.LogLevel,
	}, nil
}

// Start hooks the operator chat into logging and polls until Stop.
func (b *Bot) Start() {
	if b.operatorChatID != 0 {
		notifyLogger, err := logger.Named("notify")
		if err != nil {
			logger.Log.Errorf("Failed to create notify logger: %v", err)
		} else {
			notifyService := service.NewNotifyService(b.Bot, notifyLogger)
			logger.SetLogHook(notifyService.LogHook(b.operatorChatID, b.operatorLevel))
		}
	}

	logger.Log.Info("Bot starting")
	b.Bot.Start()
}
