package memory

import (
	"context"
	"time"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
)

type RegistrationsRepo struct {
	s *Store
}

func (r *RegistrationsRepo) Save(_ context.Context, reg registration.Registration) (registration.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.registrations {
		if id != reg.ID && existing.RegistrationCode == reg.RegistrationCode {
			return registration.Registration{}, registration.ErrDuplicateRegistration
		}
	}

	if reg.MeetupID != nil {
		if _, ok := r.s.meetups[*reg.MeetupID]; !ok {
			return registration.Registration{}, meetup.ErrNotFound
		}
	}

	now := time.Now().UTC()
	reg.DateOfRegistration = registration.Day(reg.DateOfRegistration)
	reg.MeetupID = cloneInt(reg.MeetupID)

	if reg.ID == 0 {
		r.s.registrationSeq++
		reg.ID = r.s.registrationSeq
		reg.CreatedAt = now
	} else {
		existing, ok := r.s.registrations[reg.ID]
		if !ok {
			return registration.Registration{}, registration.ErrNotFound
		}
		reg.CreatedAt = existing.CreatedAt
	}
	reg.UpdatedAt = now

	r.s.registrations[reg.ID] = reg

	return reg, nil
}

func (r *RegistrationsRepo) FindByID(_ context.Context, id int) (registration.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reg, ok := r.s.registrations[id]
	if !ok {
		return registration.Registration{}, registration.ErrNotFound
	}
	reg.MeetupID = cloneInt(reg.MeetupID)
	return reg, nil
}

func (r *RegistrationsRepo) FindByRegistrationCode(_ context.Context, code string) (registration.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, reg := range r.s.registrations {
		if reg.RegistrationCode == code {
			reg.MeetupID = cloneInt(reg.MeetupID)
			return reg, nil
		}
	}
	return registration.Registration{}, registration.ErrNotFound
}

func (r *RegistrationsRepo) ExistsByRegistrationCode(ctx context.Context, code string) (bool, error) {
	_, err := r.FindByRegistrationCode(ctx, code)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *RegistrationsRepo) FindAll(_ context.Context) ([]registration.Registration, error) {
	return r.matching(registration.Registration{}), nil
}

func (r *RegistrationsRepo) FindByExample(_ context.Context, example registration.Registration, pageable page.Pageable) (page.Page[registration.Registration], error) {
	return paginate(r.matching(example), pageable), nil
}

func (r *RegistrationsRepo) FindByMeetup(_ context.Context, meetupID int, pageable page.Pageable) (page.Page[registration.Registration], error) {
	return paginate(r.matching(registration.Registration{MeetupID: &meetupID}), pageable), nil
}

func (r *RegistrationsRepo) Delete(_ context.Context, reg registration.Registration) error {
	r.s.mu.Lock()
	delete(r.s.registrations, reg.ID)
	r.s.mu.Unlock()

	return nil
}

// matching returns registrations equal to example, ordered by id.
func (r *RegistrationsRepo) matching(example registration.Registration) []registration.Registration {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]registration.Registration, 0, len(r.s.registrations))
	for _, id := range sortedKeys(r.s.registrations) {
		reg := r.s.registrations[id]
		if reg.Matches(example) {
			reg.MeetupID = cloneInt(reg.MeetupID)
			out = append(out, reg)
		}
	}
	return out
}
