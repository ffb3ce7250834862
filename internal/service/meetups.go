package service

import (
	"context"
	"errors"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
)

// RegistrationsByMeetupFinder is the slice of the registration port the
// meetup service needs.
type RegistrationsByMeetupFinder interface {
	FindByMeetup(ctx context.Context, meetupID int, pageable page.Pageable) (page.Page[registration.Registration], error)
}

type MeetupService struct {
	repo          MeetupRepository
	registrations RegistrationsByMeetupFinder
}

func NewMeetupService(repo MeetupRepository, registrations RegistrationsByMeetupFinder) *MeetupService {
	return &MeetupService{repo: repo, registrations: registrations}
}

func (s *MeetupService) Save(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error) {
	return s.repo.Save(ctx, m)
}

func (s *MeetupService) GetByID(ctx context.Context, id int) (meetup.Meetup, bool, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetup.ErrNotFound) {
			return meetup.Meetup{}, false, nil
		}
		return meetup.Meetup{}, false, err
	}
	return m, true, nil
}

func (s *MeetupService) FindAll(ctx context.Context, pageable page.Pageable) (page.Page[meetup.Meetup], error) {
	return s.repo.FindPage(ctx, pageable)
}

func (s *MeetupService) Update(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error) {
	return s.repo.Save(ctx, m)
}

func (s *MeetupService) Delete(ctx context.Context, m meetup.Meetup) error {
	return s.repo.Delete(ctx, m)
}

func (s *MeetupService) GetRegistrationsByMeetup(ctx context.Context, m meetup.Meetup, pageable page.Pageable) (page.Page[registration.Registration], error) {
	return s.registrations.FindByMeetup(ctx, m.ID, pageable)
}
