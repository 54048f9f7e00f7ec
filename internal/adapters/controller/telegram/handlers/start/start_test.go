package start

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jasu-us/business-card/cmd/bot"
	"github.com/jasu-us/business-card/internal/adapters/database/file"
	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/jasu-us/business-card/pkg/logger"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
)

type fakeContext struct {
	tele.Context
	payload string
	sent    []interface{}
	store   map[string]interface{}
}

func (c *fakeContext) Get(key string) interface{} { return c.store[key] }

func (c *fakeContext) Set(key string, v interface{}) {
	if c.store == nil {
		c.store = map[string]interface{}{}
	}
	c.store[key] = v
}

func (c *fakeContext) Sender() *tele.User { return &tele.User{ID: 42} }

func (c *fakeContext) Message() *tele.Message { return &tele.Message{Payload: c.payload} }

func (c *fakeContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	root := filepath.Join("..", "..", "..", "..", "..", "..")
	locale, err := os.ReadFile(filepath.Join(root, "locales", "en.yml"))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "locales"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locales", "en.yml"), locale, 0o600))
	cfg := "settings:\n  parse_mode: HTML\n  locales_dir: " + filepath.Join(dir, "locales") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "telegram.yml"), []byte(cfg), 0o600))

	lt, err := layout.NewFromFS(os.DirFS(dir), "telegram.yml")
	require.NoError(t, err)
	return lt
}

func newHandler(t *testing.T) (*Handler, *layout.Layout) {
	t.Helper()
	people, err := file.NewPersonStorage([]entity.Person{
		{ID: "alice", Name: "Alice Smith", Title: "Head of Sales", Phone: "5551234567"},
		{ID: "bob", Name: "Bob Jones"},
	})
	require.NoError(t, err)

	lt := testLayout(t)
	b := &bot.Bot{
		Layout:    lt,
		People:    people,
		Style:     qr.Jasu,
		Logo:      qr.NewLogoAsset("http://127.0.0.1:1/logo.png", nil, logger.Nop()),
		PublicURL: "https://cards.example.com",
		Logger:    logger.Nop(),
	}
	return New(b), lt
}

func run(h *Handler, lt *layout.Layout, payload string) *fakeContext {
	c := &fakeContext{payload: payload}
	_ = lt.Middleware("en")(h.Start)(c)
	return c
}

func TestStartSendsCard(t *testing.T) {
	h, lt := newHandler(t)
	c := run(h, lt, "alice")

	require.Len(t, c.sent, 2)
	photo, ok := c.sent[0].(*tele.Photo)
	require.True(t, ok)
	assert.Contains(t, photo.Caption, "<b>Alice Smith</b>")
	assert.Contains(t, photo.Caption, "<i>Head of Sales</i>")
	assert.Contains(t, photo.Caption, "https://cards.example.com/alice")

	doc, ok := c.sent[1].(*tele.Document)
	require.True(t, ok)
	assert.Equal(t, "Alice_Smith.vcf", doc.FileName)
	assert.Equal(t, "text/x-vcard", doc.MIME)
}

func TestStartUnknownCard(t *testing.T) {
	h, lt := newHandler(t)
	c := run(h, lt, "ghost")

	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "<code>ghost</code>")
}

func TestStartListsCards(t *testing.T) {
	h, lt := newHandler(t)
	c := run(h, lt, "")

	require.Len(t, c.sent, 1)
	text, ok := c.sent[0].(string)
	require.True(t, ok)
	assert.Contains(t, text, `<a href="https://cards.example.com/alice">Alice Smith</a>`)
	assert.Contains(t, text, `<a href="https://cards.example.com/bob">Bob Jones</a>`)
}
