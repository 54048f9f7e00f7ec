package service

import (
	"time"

	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/jasu-us/business-card/internal/domain/utils/actions"
	"github.com/jasu-us/business-card/internal/domain/utils/vcard"
)

type ContactService struct{}

func NewContactService() *ContactService {
	return &ContactService{}
}

func (s *ContactService) VCard(person *entity.Person, now time.Time) []byte {
	return []byte(vcard.Generate(*person, now))
}

func (s *ContactService) CompactVCard(person *entity.Person, now time.Time) []byte {
	return []byte(vcard.Compact(*person, now))
}

func (s *ContactService) FileName(person *entity.Person) string {
	return vcard.FileName(person.Name)
}

func (s *ContactService) Actions(person *entity.Person) []actions.Action {
	return actions.For(*person)
}
