package setup

import (
	"net/http"

	"github.com/jasu-us/business-card/cmd/server"
	"github.com/jasu-us/business-card/internal/adapters/controller/web/handlers/card"
	"github.com/jasu-us/business-card/internal/adapters/controller/web/middlewares"
)

func Setup(s *server.Server) {
	middle := middlewares.New(s)
	cardHandler := card.New(s)

	s.Use(middle.All()...)

	s.HandleFunc("/healthz", cardHandler.Health).Methods(http.MethodGet)
	s.HandleFunc("/", cardHandler.Root).Methods(http.MethodGet)
	s.HandleFunc("/{id}", cardHandler.Card).Methods(http.MethodGet)
	s.HandleFunc("/{id}/qr.png", cardHandler.QRCodePNG).Methods(http.MethodGet)
	s.HandleFunc("/{id}/qr.svg", cardHandler.QRCodeSVG).Methods(http.MethodGet)
	s.HandleFunc("/{id}/contact.vcf", cardHandler.Contact).Methods(http.MethodGet)

	// unmatched routes skip router middlewares
	s.NotFoundHandler = middle.RequestID(middle.Logging(http.HandlerFunc(cardHandler.NotFound)))
}
