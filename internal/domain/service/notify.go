package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/jasu-us/business-card/pkg/logger/types"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

const sendLogFailure = "failed to send log to channel"

type notifySender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type NotifyService struct {
	bot    notifySender
	logger *types.Logger
}

func NewNotifyService(bot notifySender, logger *types.Logger) *NotifyService {
	return &NotifyService{
		bot:    bot,
		logger: logger,
	}
}

// LogHook returns a log hook that forwards entries at or above level to the
// operator chat.
func (s *NotifyService) LogHook(chatID int64, level zapcore.Level) types.LogHook {
	chat := tele.ChatID(chatID)
	return func(log types.Log) {
		if log.Level < level || strings.Contains(log.Message, sendLogFailure) {
			return
		}
		if _, err := s.bot.Send(chat, FormatLog(log), tele.ModeHTML); err != nil {
			s.logger.Errorf("%s %d: %v", sendLogFailure, chatID, err)
		}
	}
}

// FormatLog renders a log entry as an HTML chat message.
func FormatLog(log types.Log) string {
	return fmt.Sprintf(
		"<b>%s</b> [%s] %s\n<code>%s</code>\n%s",
		log.Level.CapitalString(),
		html.EscapeString(log.LoggerName),
		log.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		html.EscapeString(log.Caller),
		html.EscapeString(log.Message),
	)
}
