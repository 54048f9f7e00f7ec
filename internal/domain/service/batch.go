package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/jasu-us/business-card/pkg/logger/types"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
)

type batchPeople interface {
	List(ctx context.Context) ([]entity.Person, error)
}

type batchQr interface {
	Export(ctx context.Context, person *entity.Person, pageURL string) (qr.Artifact, error)
}

type batchContacts interface {
	VCard(person *entity.Person, now time.Time) []byte
	FileName(person *entity.Person) string
}

type fileWriter interface {
	Write(name string, data []byte) (string, error)
	Delete(path string) error
}

// BatchService writes the QR code and contact card of every person.
type BatchService struct {
	people   batchPeople
	qr       batchQr
	contacts batchContacts
	writer   fileWriter
	logger   *types.Logger
}

func NewBatchService(people batchPeople, qr batchQr, contacts batchContacts, writer fileWriter, logger *types.Logger) *BatchService {
	return &BatchService{
		people:   people,
		qr:       qr,
		contacts: contacts,
		writer:   writer,
		logger:   logger,
	}
}

// Run exports everyone with page URLs under baseURL. A failing person is
// logged and skipped without leaving half of its files behind; the number of
// failures is reported at the end.
func (s *BatchService) Run(ctx context.Context, baseURL string) ([]string, error) {
	people, err := s.people.List(ctx)
	if err != nil {
		return nil, err
	}

	baseURL = strings.TrimRight(baseURL, "/")
	now := time.Now()

	var (
		written []string
		failed  int
	)
	for i := range people {
		if err = ctx.Err(); err != nil {
			return written, err
		}
		p := &people[i]

		artifact, err := s.qr.Export(ctx, p, baseURL+"/"+p.ID)
		if err != nil {
			s.logger.Errorf("(person: %s) qr export failed: %v", p.ID, err)
			failed++
			continue
		}

		pngPath, err := s.writer.Write(artifact.Name, artifact.Data)
		if err != nil {
			s.logger.Errorf("(person: %s) %v", p.ID, err)
			failed++
			continue
		}

		vcfPath, err := s.writer.Write(s.contacts.FileName(p), s.contacts.VCard(p, now))
		if err != nil {
			s.logger.Errorf("(person: %s) %v", p.ID, err)
			if err = s.writer.Delete(pngPath); err != nil {
				s.logger.Warnf("(person: %s) %v", p.ID, err)
			}
			failed++
			continue
		}

		written = append(written, pngPath, vcfPath)
		s.logger.Infof("(person: %s) exported", p.ID)
	}

	if failed > 0 {
		return written, fmt.Errorf("%d export(s) failed", failed)
	}
	return written, nil
}
