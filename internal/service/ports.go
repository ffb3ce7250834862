package service

import (
	"context"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
)

// RegistrationRepository is the persistence port for registrations.
// FindByID and FindByRegistrationCode return registration.ErrNotFound on a miss.
// Save inserts when ID is zero and updates otherwise.
type RegistrationRepository interface {
	Save(ctx context.Context, r registration.Registration) (registration.Registration, error)
	FindByID(ctx context.Context, id int) (registration.Registration, error)
	FindByRegistrationCode(ctx context.Context, code string) (registration.Registration, error)
	ExistsByRegistrationCode(ctx context.Context, code string) (bool, error)
	FindAll(ctx context.Context) ([]registration.Registration, error)
	FindByExample(ctx context.Context, example registration.Registration, pageable page.Pageable) (page.Page[registration.Registration], error)
	FindByMeetup(ctx context.Context, meetupID int, pageable page.Pageable) (page.Page[registration.Registration], error)
	Delete(ctx context.Context, r registration.Registration) error
}

// MeetupRepository is the persistence port for meetups.
// FindByID returns meetup.ErrNotFound on a miss.
type MeetupRepository interface {
	Save(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error)
	FindByID(ctx context.Context, id int) (meetup.Meetup, error)
	FindPage(ctx context.Context, pageable page.Pageable) (page.Page[meetup.Meetup], error)
	Delete(ctx context.Context, m meetup.Meetup) error
}
