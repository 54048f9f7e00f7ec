package file

import (
	"context"
	"fmt"

	"github.com/jasu-us/business-card/internal/domain/common/errorz"
	"github.com/jasu-us/business-card/internal/domain/entity"
	"github.com/spf13/viper"
)

// PersonStorage is a read-only set of people loaded at startup.
type PersonStorage struct {
	people []entity.Person
	byID   map[string]int
}

// Load reads the `people` list from a YAML (or any viper supported) file.
func Load(path string) (*PersonStorage, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read people file: %w", err)
	}

	var people []entity.Person
	if err := v.UnmarshalKey("people", &people); err != nil {
		return nil, fmt.Errorf("decode people file: %w", err)
	}
	return NewPersonStorage(people)
}

func NewPersonStorage(people []entity.Person) (*PersonStorage, error) {
	s := &PersonStorage{
		people: make([]entity.Person, 0, len(people)),
		byID:   make(map[string]int, len(people)),
	}
	for i, p := range people {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: person #%d has no id", errorz.InvalidPayload, i+1)
		}
		if _, ok := s.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q", errorz.DuplicateID, p.ID)
		}
		s.byID[p.ID] = len(s.people)
		s.people = append(s.people, p)
	}
	return s, nil
}

func (s *PersonStorage) Get(_ context.Context, id string) (*entity.Person, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, errorz.NotFound
	}
	p := s.people[i]
	return &p, nil
}

func (s *PersonStorage) GetAll(_ context.Context) ([]entity.Person, error) {
	out := make([]entity.Person, len(s.people))
	copy(out, s.people)
	return out, nil
}
