package memory

import (
	"sort"
	"sync"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
)

// Store keeps both tables behind one lock so the registration code
// uniqueness and the meetup reference behave like the SQL schema.
type Store struct {
	mu              sync.RWMutex
	meetups         map[int]meetup.Meetup
	registrations   map[int]registration.Registration
	meetupSeq       int
	registrationSeq int
}

func NewStore() *Store {
	return &Store{
		meetups:       make(map[int]meetup.Meetup),
		registrations: make(map[int]registration.Registration),
	}
}

func (s *Store) Registrations() *RegistrationsRepo {
	return &RegistrationsRepo{s: s}
}

func (s *Store) Meetups() *MeetupsRepo {
	return &MeetupsRepo{s: s}
}

func paginate[T any](items []T, p page.Pageable) page.Page[T] {
	total := len(items)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit()
	if end > total {
		end = total
	}

	content := make([]T, end-start)
	copy(content, items[start:end])

	return page.New(content, p, total)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
