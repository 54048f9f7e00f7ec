package config

import (
	"net/http"
	"os"
	"time"

	"github.com/jasu-us/business-card/internal/adapters/database/file"
	"github.com/jasu-us/business-card/pkg/logger"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Server struct {
	Addr            string
	PublicURL       string
	DefaultPerson   string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	DoubleTapWindow time.Duration
}

type Bot struct {
	Enabled        bool
	OperatorChatID int64
	LogLevel       zapcore.Level
}

type Config struct {
	People *file.PersonStorage
	Style  qr.Style
	Logo   *qr.LogoAsset
	Server Server
	Bot    Bot
}

func setDefaults() {
	viper.SetDefault("settings.timezone", "UTC")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.default-person", "dvazquez")
	viper.SetDefault("server.read-timeout", 10*time.Second)
	viper.SetDefault("server.write-timeout", 30*time.Second)
	viper.SetDefault("server.double-tap-window", 400*time.Millisecond)
	viper.SetDefault("people.file", "people.yaml")
	viper.SetDefault("logo.url", qr.Jasu.LogoURL)
	viper.SetDefault("logo.timeout", qr.Jasu.LogoTimeout)
	viper.SetDefault("bot.log-level", "error")
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if err := os.Setenv("BOT_TOKEN", viper.GetString("bot.token")); err != nil {
		panic(err)
	}
}

func Get() *Config {
	initConfig()

	location, err := time.LoadLocation(viper.GetString("settings.timezone"))
	if err != nil {
		panic(err)
	}

	err = logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location,
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	people, err := file.Load(viper.GetString("people.file"))
	if err != nil {
		logger.Log.Panicf("Failed to load people: %v", err)
	} else {
		logger.Log.Infof("Loaded people from %s", viper.GetString("people.file"))
	}

	style := qr.Jasu
	style.LogoURL = viper.GetString("logo.url")
	style.LogoTimeout = viper.GetDuration("logo.timeout")
	if err = style.Validate(); err != nil {
		logger.Log.Panicf("Invalid qr style: %v", err)
	}

	logoLogger, err := logger.Named("logo")
	if err != nil {
		panic(err)
	}

	var level zapcore.Level
	if err = level.UnmarshalText([]byte(viper.GetString("bot.log-level"))); err != nil {
		logger.Log.Panicf("Invalid bot log level: %v", err)
	}

	return &Config{
		People: people,
		Style:  style,
		Logo:   qr.NewLogoAsset(style.LogoURL, &http.Client{Timeout: style.LogoTimeout}, logoLogger),
		Server: Server{
			Addr:            viper.GetString("server.addr"),
			PublicURL:       viper.GetString("server.public-url"),
			DefaultPerson:   viper.GetString("server.default-person"),
			ReadTimeout:     viper.GetDuration("server.read-timeout"),
			WriteTimeout:    viper.GetDuration("server.write-timeout"),
			DoubleTapWindow: viper.GetDuration("server.double-tap-window"),
		},
		Bot: Bot{
			Enabled:        viper.GetBool("bot.enabled"),
			OperatorChatID: viper.GetInt64("bot.operator-chat-id"),
			LogLevel:       level,
		},
	}
}
