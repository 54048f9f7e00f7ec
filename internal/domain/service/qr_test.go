package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/jasu-us/business-card/pkg/logger"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogo struct {
	remote   string
	embedded string
}

func (l fakeLogo) Href() string {
	if l.embedded != "" {
		return l.embedded
	}
	return l.remote
}

func (l fakeLogo) Embedded() (string, bool) { return l.embedded, l.embedded != "" }

type recordingExporter struct {
	scene    qr.Scene
	embedded string
	name     string
	err      error
}

func (e *recordingExporter) Export(_ context.Context, scene qr.Scene, embedded, name string) (qr.Artifact, error) {
	e.scene, e.embedded, e.name = scene, embedded, name
	if e.err != nil {
		return qr.Artifact{}, e.err
	}
	return qr.Artifact{Name: qr.FileName(name), Data: []byte("png"), Size: 1000}, nil
}

func TestQrServiceSceneUsesLogoState(t *testing.T) {
	ctx := context.Background()

	s := NewQrService(qr.Jasu, fakeLogo{remote: "https://cdn.example.com/logo.png"}, &recordingExporter{}, logger.Nop())
	scene, err := s.Scene(ctx, "https://cards.example.com/alice")
	require.NoError(t, err)
	node, ok := scene.Logo()
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/logo.png", node.Href)

	s = NewQrService(qr.Jasu, fakeLogo{remote: "https://cdn.example.com/logo.png", embedded: "data:image/png;base64,AA=="}, &recordingExporter{}, logger.Nop())
	scene, err = s.Scene(ctx, "https://cards.example.com/alice")
	require.NoError(t, err)
	node, _ = scene.Logo()
	assert.Equal(t, "data:image/png;base64,AA==", node.Href)
}

func TestQrServiceSceneRejectsEmptyURL(t *testing.T) {
	s := NewQrService(qr.Jasu, fakeLogo{}, &recordingExporter{}, logger.Nop())
	_, err := s.Scene(context.Background(), "")
	assert.ErrorIs(t, err, qr.ErrEmptyPayload)
}

func TestQrServiceSVG(t *testing.T) {
	s := NewQrService(qr.Jasu, fakeLogo{remote: "https://cdn.example.com/logo.png"}, &recordingExporter{}, logger.Nop())
	doc, err := s.SVG(context.Background(), "https://cards.example.com/alice")
	require.NoError(t, err)
	assert.True(t, bytes.Contains(doc, []byte("<svg")))
	assert.True(t, bytes.Contains(doc, []byte("https://cdn.example.com/logo.png")))
}

func TestQrServiceExport(t *testing.T) {
	exp := &recordingExporter{}
	logo := fakeLogo{remote: "https://cdn.example.com/logo.png", embedded: "data:image/png;base64,AA=="}
	s := NewQrService(qr.Jasu, logo, exp, logger.Nop())

	art, err := s.Export(context.Background(), &entity.Person{ID: "alice"}, "https://cards.example.com/alice")
	require.NoError(t, err)
	assert.Equal(t, "alice-qr.png", art.Name)
	assert.Equal(t, "alice", exp.name)
	assert.Equal(t, logo.embedded, exp.embedded)
	assert.Zero(t, exp.scene.ViewBox%qr.Jasu.CellSize)
	assert.Equal(t, exp.scene.ViewBox, exp.scene.Width, "exporter receives the display scene")
}

func TestQrServiceExportWithoutEmbeddedLogo(t *testing.T) {
	exp := &recordingExporter{}
	s := NewQrService(qr.Jasu, fakeLogo{remote: "https://cdn.example.com/logo.png"}, exp, logger.Nop())

	_, err := s.Export(context.Background(), &entity.Person{ID: "alice"}, "https://cards.example.com/alice")
	require.NoError(t, err)
	assert.Empty(t, exp.embedded)
}

func TestQrServiceExportFailure(t *testing.T) {
	exp := &recordingExporter{err: qr.ErrSceneDecode}
	s := NewQrService(qr.Jasu, fakeLogo{}, exp, logger.Nop())

	_, err := s.Export(context.Background(), &entity.Person{ID: "alice"}, "https://cards.example.com/alice")
	assert.True(t, errors.Is(err, qr.ErrSceneDecode))
}
