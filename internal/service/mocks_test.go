package service_test

import (
	"context"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
	"github.com/stretchr/testify/mock"
)

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Save(ctx context.Context, r registration.Registration) (registration.Registration, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(registration.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) FindByID(ctx context.Context, id int) (registration.Registration, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(registration.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) FindByRegistrationCode(ctx context.Context, code string) (registration.Registration, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(registration.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) ExistsByRegistrationCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockRegistrationRepo) FindAll(ctx context.Context) ([]registration.Registration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]registration.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) FindByExample(ctx context.Context, example registration.Registration, pageable page.Pageable) (page.Page[registration.Registration], error) {
	args := m.Called(ctx, example, pageable)
	return args.Get(0).(page.Page[registration.Registration]), args.Error(1)
}

func (m *mockRegistrationRepo) FindByMeetup(ctx context.Context, meetupID int, pageable page.Pageable) (page.Page[registration.Registration], error) {
	args := m.Called(ctx, meetupID, pageable)
	return args.Get(0).(page.Page[registration.Registration]), args.Error(1)
}

func (m *mockRegistrationRepo) Delete(ctx context.Context, r registration.Registration) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type mockMeetupRepo struct {
	mock.Mock
}

func (m *mockMeetupRepo) Save(ctx context.Context, mt meetup.Meetup) (meetup.Meetup, error) {
	args := m.Called(ctx, mt)
	return args.Get(0).(meetup.Meetup), args.Error(1)
}

func (m *mockMeetupRepo) FindByID(ctx context.Context, id int) (meetup.Meetup, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(meetup.Meetup), args.Error(1)
}

func (m *mockMeetupRepo) FindPage(ctx context.Context, pageable page.Pageable) (page.Page[meetup.Meetup], error) {
	args := m.Called(ctx, pageable)
	return args.Get(0).(page.Page[meetup.Meetup]), args.Error(1)
}

func (m *mockMeetupRepo) Delete(ctx context.Context, mt meetup.Meetup) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}
