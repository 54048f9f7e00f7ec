package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jasu-us/business-card/internal/domain/common/errorz"
	"github.com/jasu-us/business-card/internal/domain/entity"
)

var ErrPersonNotFound = fmt.Errorf("person %w", errorz.NotFound)

type PersonStorage interface {
	Get(ctx context.Context, id string) (*entity.Person, error)
	GetAll(ctx context.Context) ([]entity.Person, error)
}

type PersonService struct {
	storage   PersonStorage
	defaultID string
}

func NewPersonService(storage PersonStorage, defaultID string) *PersonService {
	return &PersonService{
		storage:   storage,
		defaultID: defaultID,
	}
}

func (s *PersonService) Get(ctx context.Context, id string) (*entity.Person, error) {
	person, err := s.storage.Get(ctx, id)
	if errors.Is(err, errorz.NotFound) {
		return nil, fmt.Errorf("%w: %q", ErrPersonNotFound, id)
	}
	return person, err
}

func (s *PersonService) List(ctx context.Context) ([]entity.Person, error) {
	return s.storage.GetAll(ctx)
}

// DefaultID is the card served at the site root.
func (s *PersonService) DefaultID() string {
	return s.defaultID
}

func (s *PersonService) Default(ctx context.Context) (*entity.Person, error) {
	return s.Get(ctx, s.defaultID)
}
