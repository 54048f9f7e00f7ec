package card

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jasu-us/business-card/cmd/server"
	"github.com/jasu-us/business-card/internal/adapters/controller/web/middlewares"
	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/jasu-us/business-card/internal/domain/service"
	"github.com/jasu-us/business-card/internal/domain/utils/actions"
	"github.com/jasu-us/business-card/pkg/logger/types"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed templates/tapgate.js
var tapGateJS string

type personService interface {
	Get(ctx context.Context, id string) (*entity.Person, error)
	DefaultID() string
}

type qrService interface {
	SVG(ctx context.Context, pageURL string) ([]byte, error)
	Export(ctx context.Context, person *entity.Person, pageURL string) (qr.Artifact, error)
}

type contactService interface {
	VCard(person *entity.Person, now time.Time) []byte
	CompactVCard(person *entity.Person, now time.Time) []byte
	FileName(person *entity.Person) string
	Actions(person *entity.Person) []actions.Action
}

type Handler struct {
	personService  personService
	qrService      qrService
	contactService contactService

	pages     *template.Template
	publicURL string
	doubleTap time.Duration
	logger    *types.Logger
}

func New(s *server.Server) *Handler {
	return &Handler{
		personService:  service.NewPersonService(s.People, s.Config.DefaultPerson),
		qrService:      service.NewQrService(s.Style, s.Logo, qr.NewExporter(s.Style, s.Logger), s.Logger),
		contactService: service.NewContactService(),
		pages:          template.Must(template.ParseFS(templates, "templates/*.html")),
		publicURL:      strings.TrimRight(s.Config.PublicURL, "/"),
		doubleTap:      s.Config.DoubleTapWindow,
		logger:         s.Logger,
	}
}

// link is an action with its URL marked safe for tel:, weixin: and
// similar schemes the template would otherwise reject.
type link struct {
	Kind     actions.Kind
	Title    string
	URL      template.URL
	External bool
}

type cardPage struct {
	Person      *entity.Person
	Actions     []link
	PageURL     string
	QR          template.HTML
	QRFile      string
	ExportURL   string
	ContactURL  string
	ContactFile string
	DoubleTapMs int64
	TapGate     template.JS
	ShareTitle  string
	ShareText   string
}

type notFoundPage struct {
	HomeURL string
}

// PageURL is the canonical address of a card, the payload of its code.
// Without a public URL it is derived from the request; forwarded protocols
// other than http and https are ignored.
func (h *Handler) PageURL(r *http.Request, id string) string {
	if h.publicURL != "" {
		return h.publicURL + "/" + id
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	proto := strings.ToLower(strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-Proto"), ",")[0]))
	if proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host + "/" + id
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+h.personService.DefaultID(), http.StatusFound)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Infof("(request: %s) no card at %s", middlewares.RequestID(r.Context()), r.URL.Path)
	h.render(w, r, http.StatusNotFound, "notfound.html", notFoundPage{HomeURL: "/" + h.personService.DefaultID()})
}

// person resolves the {id} route variable, answering 404 or 500 itself when
// it cannot.
func (h *Handler) person(w http.ResponseWriter, r *http.Request) (*entity.Person, bool) {
	id := mux.Vars(r)["id"]
	p, err := h.personService.Get(r.Context(), id)
	if errors.Is(err, service.ErrPersonNotFound) {
		h.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		h.logger.Errorf("(person: %s) failed to load person: %v", id, err)
		http.Error(w, "card unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}

func (h *Handler) Card(w http.ResponseWriter, r *http.Request) {
	p, ok := h.person(w, r)
	if !ok {
		return
	}

	pageURL := h.PageURL(r, p.ID)
	doc, err := h.qrService.SVG(r.Context(), pageURL)
	if err != nil {
		// the card stays usable without its code
		h.logger.Errorf("(person: %s) failed to compose qr: %v", p.ID, err)
	}

	h.render(w, r, http.StatusOK, "card.html", cardPage{
		Person:      p,
		Actions:     links(h.contactService.Actions(p)),
		PageURL:     pageURL,
		QR:          inlineSVG(doc),
		QRFile:      qr.FileName(p.ID),
		ExportURL:   "/" + p.ID + "/qr.png",
		ContactURL:  "/" + p.ID + "/contact.vcf",
		ContactFile: h.contactService.FileName(p),
		DoubleTapMs: h.doubleTap.Milliseconds(),
		TapGate:     template.JS(tapGateJS),
		ShareTitle:  shareTitle(p),
		ShareText:   "Meet " + p.Name,
	})
}

func (h *Handler) QRCodePNG(w http.ResponseWriter, r *http.Request) {
	p, ok := h.person(w, r)
	if !ok {
		return
	}

	artifact, err := h.qrService.Export(r.Context(), p, h.PageURL(r, p.ID))
	if err != nil {
		h.logger.Errorf("(person: %s) qr export failed: %v", p.ID, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", attachment(artifact.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	_, _ = w.Write(artifact.Data)
}

func (h *Handler) QRCodeSVG(w http.ResponseWriter, r *http.Request) {
	p, ok := h.person(w, r)
	if !ok {
		return
	}

	doc, err := h.qrService.SVG(r.Context(), h.PageURL(r, p.ID))
	if err != nil {
		h.logger.Errorf("(person: %s) failed to compose qr: %v", p.ID, err)
		http.Error(w, "qr unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(doc)
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	p, ok := h.person(w, r)
	if !ok {
		return
	}

	// ?compact=1 serves name, phone and email only.
	card := h.contactService.VCard(p, time.Now())
	if compact, _ := strconv.ParseBool(r.URL.Query().Get("compact")); compact {
		card = h.contactService.CompactVCard(p, time.Now())
	}
	h.logger.Infof("(person: %s) contact card downloaded", p.ID)

	w.Header().Set("Content-Type", "text/x-vcard; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(h.contactService.FileName(p)))
	_, _ = w.Write(card)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Errorf("(request: %s) failed to render %s: %v", middlewares.RequestID(r.Context()), name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// inlineSVG drops the XML prolog so the document can sit inside HTML.
func inlineSVG(doc []byte) template.HTML {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}
	return template.HTML(doc)
}

func links(as []actions.Action) []link {
	out := make([]link, 0, len(as))
	for _, a := range as {
		out = append(out, link{Kind: a.Kind, Title: a.Title, URL: template.URL(a.URL), External: a.External})
	}
	return out
}

func shareTitle(p *entity.Person) string {
	if p.Title == "" {
		return p.Name
	}
	return p.Name + " - " + p.Title
}

func attachment(name string) string {
	return `attachment; filename="` + strings.ReplaceAll(name, `"`, "") + `"`
}
