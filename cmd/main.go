package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jasu-us/business-card/cmd/bot"
	"github.com/jasu-us/business-card/cmd/server"
	"github.com/jasu-us/business-card/internal/adapters/config"
	setupBot "github.com/jasu-us/business-card/internal/adapters/controller/telegram/setup"
	setupWeb "github.com/jasu-us/business-card/internal/adapters/controller/web/setup"
	"github.com/jasu-us/business-card/internal/domain/service"
	"github.com/jasu-us/business-card/pkg/generator"
	"github.com/jasu-us/business-card/pkg/logger"
	qr "github.com/jasu-us/business-card/pkg/qrcode"

	_ "time/tzdata"
)

func main() {
	flag.Parse()

	cfg := config.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Logo.Resolve(ctx)
	defer cfg.Logo.Close()

	switch flag.Arg(0) {
	case "", "serve":
		serve(ctx, cfg)
	case "export":
		dir := flag.Arg(1)
		if dir == "" {
			dir = "exports"
		}
		export(ctx, cfg, dir)
	default:
		log.Panicf("unknown command %q, expected serve or export <dir>", flag.Arg(0))
	}
}

func serve(ctx context.Context, cfg *config.Config) {
	s, err := server.New(cfg)
	if err != nil {
		log.Panic(err)
	}
	setupWeb.Setup(s)

	if cfg.Bot.Enabled {
		b, err := bot.New(cfg)
		if err != nil {
			log.Panic(err)
		}
		setupBot.Setup(b)

		go b.Start()
		defer b.Stop()
	}

	if err = s.Start(ctx); err != nil {
		logger.Log.Panicf("Server stopped: %v", err)
	}
}

func export(ctx context.Context, cfg *config.Config, dir string) {
	if cfg.Server.PublicURL == "" {
		logger.Log.Panic("export needs server.public-url")
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.Style.LogoTimeout)
	if _, ok := cfg.Logo.Wait(waitCtx); !ok {
		logger.Log.Warn("Exporting with the remote logo reference")
	}
	cancel()

	exportLogger, err := logger.Named("export")
	if err != nil {
		log.Panic(err)
	}

	people := service.NewPersonService(cfg.People, cfg.Server.DefaultPerson)
	qrService := service.NewQrService(cfg.Style, cfg.Logo, qr.NewExporter(cfg.Style, exportLogger), exportLogger)
	batch := service.NewBatchService(people, qrService, service.NewContactService(), generator.NewWriter(dir), exportLogger)

	paths, err := batch.Run(ctx, cfg.Server.PublicURL)
	for _, path := range paths {
		exportLogger.Infof("wrote %s", path)
	}
	if err != nil {
		logger.Log.Panicf("Export incomplete: %v", err)
	}
}
