package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake implementations of the handlers.RegistrationService and handlers.MeetupService interfaces

type fakeRegistrationService struct {
	saveFn   func(ctx context.Context, r registration.Registration) (registration.Registration, error)
	getFn    func(ctx context.Context, id int) (registration.Registration, bool, error)
	updateFn func(ctx context.Context, r registration.Registration) (registration.Registration, error)
	deleteFn func(ctx context.Context, r registration.Registration) error
	findFn   func(ctx context.Context, example registration.Registration, p page.Pageable) (page.Page[registration.Registration], error)

	saveCalls   int
	deleteCalls int
}

func (f *fakeRegistrationService) Save(ctx context.Context, r registration.Registration) (registration.Registration, error) {
	f.saveCalls++
	if f.saveFn != nil {
		return f.saveFn(ctx, r)
	}
	return r, nil
}

func (f *fakeRegistrationService) GetByID(ctx context.Context, id int) (registration.Registration, bool, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return registration.Registration{}, false, nil
}

func (f *fakeRegistrationService) Update(ctx context.Context, r registration.Registration) (registration.Registration, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return r, nil
}

func (f *fakeRegistrationService) Delete(ctx context.Context, r registration.Registration) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, r)
	}
	return nil
}

func (f *fakeRegistrationService) Find(ctx context.Context, example registration.Registration, p page.Pageable) (page.Page[registration.Registration], error) {
	if f.findFn != nil {
		return f.findFn(ctx, example, p)
	}
	return page.New[registration.Registration](nil, p, 0), nil
}

type fakeMeetupService struct {
	saveFn          func(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error)
	getFn           func(ctx context.Context, id int) (meetup.Meetup, bool, error)
	findAllFn       func(ctx context.Context, p page.Pageable) (page.Page[meetup.Meetup], error)
	updateFn        func(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error)
	deleteFn        func(ctx context.Context, m meetup.Meetup) error
	registrationsFn func(ctx context.Context, m meetup.Meetup, p page.Pageable) (page.Page[registration.Registration], error)
}

func (f *fakeMeetupService) Save(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error) {
	if f.saveFn != nil {
		return f.saveFn(ctx, m)
	}
	return m, nil
}

func (f *fakeMeetupService) GetByID(ctx context.Context, id int) (meetup.Meetup, bool, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return meetup.Meetup{}, false, nil
}

func (f *fakeMeetupService) FindAll(ctx context.Context, p page.Pageable) (page.Page[meetup.Meetup], error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, p)
	}
	return page.New[meetup.Meetup](nil, p, 0), nil
}

func (f *fakeMeetupService) Update(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, m)
	}
	return m, nil
}

func (f *fakeMeetupService) Delete(ctx context.Context, m meetup.Meetup) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, m)
	}
	return nil
}

func (f *fakeMeetupService) GetRegistrationsByMeetup(ctx context.Context, m meetup.Meetup, p page.Pageable) (page.Page[registration.Registration], error) {
	if f.registrationsFn != nil {
		return f.registrationsFn(ctx, m, p)
	}
	return page.New[registration.Registration](nil, p, 0), nil
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}
