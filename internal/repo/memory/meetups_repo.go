package memory

import (
	"context"
	"time"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
)

type MeetupsRepo struct {
	s *Store
}

func (r *MeetupsRepo) Save(_ context.Context, m meetup.Meetup) (meetup.Meetup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()

	if m.ID == 0 {
		r.s.meetupSeq++
		m.ID = r.s.meetupSeq
		m.CreatedAt = now
	} else {
		existing, ok := r.s.meetups[m.ID]
		if !ok {
			return meetup.Meetup{}, meetup.ErrNotFound
		}
		m.CreatedAt = existing.CreatedAt
	}
	m.UpdatedAt = now

	r.s.meetups[m.ID] = m

	return m, nil
}

func (r *MeetupsRepo) FindByID(_ context.Context, id int) (meetup.Meetup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.meetups[id]
	if !ok {
		return meetup.Meetup{}, meetup.ErrNotFound
	}
	return m, nil
}

func (r *MeetupsRepo) FindPage(_ context.Context, pageable page.Pageable) (page.Page[meetup.Meetup], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]meetup.Meetup, 0, len(r.s.meetups))
	for _, id := range sortedKeys(r.s.meetups) {
		items = append(items, r.s.meetups[id])
	}

	return paginate(items, pageable), nil
}

// Delete drops the meetup and detaches its registrations, like ON DELETE SET NULL.
func (r *MeetupsRepo) Delete(_ context.Context, m meetup.Meetup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.meetups, m.ID)

	for id, reg := range r.s.registrations {
		if reg.MeetupID != nil && *reg.MeetupID == m.ID {
			reg.MeetupID = nil
			r.s.registrations[id] = reg
		}
	}

	return nil
}
