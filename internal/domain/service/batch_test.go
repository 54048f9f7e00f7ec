package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/jasu-us/business-card/pkg/logger"
	qr "github.com/jasu-us/business-card/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryWriter map[string][]byte

func (m memoryWriter) Write(name string, data []byte) (string, error) {
	if strings.HasPrefix(string(data), "fail") {
		return "", errors.New("disk full")
	}
	m[name] = data
	return "/out/" + name, nil
}

func (m memoryWriter) Delete(path string) error {
	name := strings.TrimPrefix(path, "/out/")
	if _, ok := m[name]; !ok {
		return errors.New("no such file")
	}
	delete(m, name)
	return nil
}

type peopleList []entity.Person

func (p peopleList) List(context.Context) ([]entity.Person, error) { return p, nil }

type urlRecorder struct {
	urls []string
	fail map[string]bool
}

func (r *urlRecorder) Export(_ context.Context, p *entity.Person, pageURL string) (qr.Artifact, error) {
	r.urls = append(r.urls, pageURL)
	if r.fail[p.ID] {
		return qr.Artifact{}, qr.ErrSceneDecode
	}
	return qr.Artifact{Name: qr.FileName(p.ID), Data: []byte("png")}, nil
}

func TestBatchServiceRun(t *testing.T) {
	people := peopleList{{ID: "alice", Name: "Alice Smith"}, {ID: "bob", Name: "Bob Jones"}}
	rec := &urlRecorder{}
	out := memoryWriter{}

	s := NewBatchService(people, rec, NewContactService(), out, logger.Nop())
	paths, err := s.Run(context.Background(), "https://cards.example.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cards.example.com/alice", "https://cards.example.com/bob"}, rec.urls)
	assert.Equal(t, []string{
		"/out/alice-qr.png", "/out/Alice_Smith.vcf",
		"/out/bob-qr.png", "/out/Bob_Jones.vcf",
	}, paths)
	assert.Contains(t, string(out["Bob_Jones.vcf"]), "FN:Bob Jones\r\n")
}

func TestBatchServiceReportsFailures(t *testing.T) {
	people := peopleList{{ID: "alice", Name: "Alice"}, {ID: "bob", Name: "Bob"}}
	rec := &urlRecorder{fail: map[string]bool{"alice": true}}
	out := memoryWriter{}

	s := NewBatchService(people, rec, NewContactService(), out, logger.Nop())
	paths, err := s.Run(context.Background(), "https://cards.example.com")
	assert.EqualError(t, err, "1 export(s) failed")
	assert.Equal(t, []string{"/out/bob-qr.png", "/out/Bob.vcf"}, paths)
}

func TestBatchServiceStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewBatchService(peopleList{{ID: "alice"}}, &urlRecorder{}, NewContactService(), memoryWriter{}, logger.Nop())
	_, err := s.Run(ctx, "https://cards.example.com")
	assert.ErrorIs(t, err, context.Canceled)
}

type failingContacts struct{ *ContactService }

func (failingContacts) VCard(*entity.Person, time.Time) []byte { return []byte("fail") }

func TestBatchServiceRemovesHalfWrittenPerson(t *testing.T) {
	out := memoryWriter{}
	s := NewBatchService(peopleList{{ID: "alice", Name: "Alice"}}, &urlRecorder{}, failingContacts{NewContactService()}, out, logger.Nop())

	paths, err := s.Run(context.Background(), "https://cards.example.com")
	assert.EqualError(t, err, "1 export(s) failed")
	assert.Empty(t, paths)
	assert.Empty(t, out, "png removed with the failed vcard")
}
