package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/jasu-us/business-card/pkg/logger/types"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
)

type qrLogo interface {
	Href() string
	Embedded() (string, bool)
}

type qrExporter interface {
	Export(ctx context.Context, scene qr.Scene, embedded, name string) (qr.Artifact, error)
}

type QrService struct {
	style    qr.Style
	logo     qrLogo
	exporter qrExporter
	logger   *types.Logger
}

func NewQrService(style qr.Style, logo qrLogo, exporter qrExporter, logger *types.Logger) *QrService {
	return &QrService{
		style:    style,
		logo:     logo,
		exporter: exporter,
		logger:   logger,
	}
}

// Scene composes the code for pageURL with the logo in its current state.
func (s *QrService) Scene(_ context.Context, pageURL string) (qr.Scene, error) {
	m, err := qr.NewMatrix(pageURL)
	if err != nil {
		return qr.Scene{}, fmt.Errorf("qr matrix for %q: %w", pageURL, err)
	}
	return qr.Compose(m, s.style, s.logo.Href()), nil
}

func (s *QrService) SVG(ctx context.Context, pageURL string) ([]byte, error) {
	scene, err := s.Scene(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = scene.WriteSVG(&buf); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	return buf.Bytes(), nil
}

// Export renders the person's code as a download-ready PNG.
func (s *QrService) Export(ctx context.Context, person *entity.Person, pageURL string) (qr.Artifact, error) {
	scene, err := s.Scene(ctx, pageURL)
	if err != nil {
		return qr.Artifact{}, err
	}

	embedded, ok := s.logo.Embedded()
	if !ok {
		s.logger.Debugf("(person: %s) exporting with remote logo reference", person.ID)
	}

	artifact, err := s.exporter.Export(ctx, scene, embedded, person.ID)
	if err != nil {
		return qr.Artifact{}, err
	}
	s.logger.Infof("(person: %s) exported %s (%d bytes)", person.ID, artifact.Name, len(artifact.Data))
	return artifact, nil
}
