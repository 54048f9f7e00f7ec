package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jasu-us/business-card/internal/adapters/config"
	"github.com/jasu-us/business-card/internal/adapters/database/file"
	"github.com/jasu-us/business-card/pkg/logger"
	"github.com/jasu-us/business-card/pkg/logger/types"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	*mux.Router
	People *file.PersonStorage
	Style  qr.Style
	Logo   *qr.LogoAsset
	Config config.Server
	Logger *types.Logger
}

func New(config *config.Config) (*Server, error) {
	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}
	if config.Server.PublicURL == "" {
		httpLogger.Warn("server.public-url is not set, card links follow the request Host header")
	}

	return &Server{
		Router: mux.NewRouter(),
		People: config.People,
		Style:  config.Style,
		Logo:   config.Logo,
		Config: config.Server,
		Logger: httpLogger,
	}, nil
}

// Start serves until ctx is cancelled, then drains open requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.Config.Addr,
		Handler:      s.Router,
		ReadTimeout:  s.Config.ReadTimeout,
		WriteTimeout: s.Config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Infof("Server listening on %s", s.Config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
