package start

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jasu-us/business-card/cmd/bot"
	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/jasu-us/business-card/internal/domain/service"
	"github.com/jasu-us/business-card/pkg/logger/types"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
)

type personService interface {
	Get(ctx context.Context, id string) (*entity.Person, error)
	List(ctx context.Context) ([]entity.Person, error)
}

type qrService interface {
	Export(ctx context.Context, person *entity.Person, pageURL string) (qr.Artifact, error)
}

type contactService interface {
	VCard(person *entity.Person, now time.Time) []byte
	FileName(person *entity.Person) string
}

type Handler struct {
	personService  personService
	qrService      qrService
	contactService contactService

	publicURL string
	layout    *layout.Layout
	logger    *types.Logger
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		personService:  service.NewPersonService(b.People, ""),
		qrService:      service.NewQrService(b.Style, b.Logo, qr.NewExporter(b.Style, b.Logger), b.Logger),
		contactService: service.NewContactService(),
		publicURL:      b.PublicURL,
		layout:         b.Layout,
		logger:         b.Logger,
	}
}

// Card is the caption data of a card message.
type Card struct {
	Person *entity.Person
	URL    string
}

func (h *Handler) pageURL(id string) string {
	return h.publicURL + "/" + id
}

func (h *Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) press start button", c.Sender().ID)

	id := strings.TrimSpace(c.Message().Payload)
	if id == "" {
		return h.list(c)
	}
	return h.card(c, id)
}

func (h *Handler) list(c tele.Context) error {
	people, err := h.personService.List(context.Background())
	if err != nil {
		h.logger.Errorf("(user: %d) error while listing people: %v", c.Sender().ID, err)
		return c.Send(h.layout.Text(c, "technical_issues", err.Error()))
	}

	cards := make([]Card, 0, len(people))
	for i := range people {
		cards = append(cards, Card{Person: &people[i], URL: h.pageURL(people[i].ID)})
	}
	return c.Send(h.layout.Text(c, "cards", cards), tele.NoPreview)
}

func (h *Handler) card(c tele.Context, id string) error {
	ctx := context.Background()

	person, err := h.personService.Get(ctx, id)
	if errors.Is(err, service.ErrPersonNotFound) {
		h.logger.Infof("(user: %d) asked for unknown card %q", c.Sender().ID, id)
		return c.Send(h.layout.Text(c, "card_not_found", id))
	}
	if err != nil {
		h.logger.Errorf("(user: %d) error while getting person %q: %v", c.Sender().ID, id, err)
		return c.Send(h.layout.Text(c, "technical_issues", err.Error()))
	}

	caption := h.layout.Text(c, "card", Card{Person: person, URL: h.pageURL(person.ID)})
	artifact, err := h.qrService.Export(ctx, person, h.pageURL(person.ID))
	if err != nil {
		h.logger.Errorf("(user: %d) qr export failed for %q: %v", c.Sender().ID, person.ID, err)
		if errSend := c.Send(caption); errSend != nil {
			return errSend
		}
	} else {
		photo := &tele.Photo{
			File:    tele.FromReader(bytes.NewReader(artifact.Data)),
			Caption: caption,
		}
		if err = c.Send(photo); err != nil {
			return err
		}
	}

	return c.Send(&tele.Document{
		File:     tele.FromReader(bytes.NewReader(h.contactService.VCard(person, time.Now()))),
		FileName: h.contactService.FileName(person),
		MIME:     "text/x-vcard",
	})
}
