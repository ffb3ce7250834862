package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
)

type RegistrationService struct {
	repo RegistrationRepository
}

func NewRegistrationService(repo RegistrationRepository) *RegistrationService {
	return &RegistrationService{repo: repo}
}

// Save persists a new registration. The existence check is racy on its own;
// the store's unique index on the code is what finally rejects duplicates.
func (s *RegistrationService) Save(ctx context.Context, r registration.Registration) (registration.Registration, error) {
	exists, err := s.repo.ExistsByRegistrationCode(ctx, r.RegistrationCode)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("check registration code: %w", err)
	}

	if exists {
		return registration.Registration{}, registration.ErrDuplicateRegistration
	}

	return s.repo.Save(ctx, r)
}

func (s *RegistrationService) GetByID(ctx context.Context, id int) (registration.Registration, bool, error) {
	return found(s.repo.FindByID(ctx, id))
}

func (s *RegistrationService) GetByRegistrationCode(ctx context.Context, code string) (registration.Registration, bool, error) {
	return found(s.repo.FindByRegistrationCode(ctx, code))
}

// Update writes r through as-is; callers load and mutate it first.
func (s *RegistrationService) Update(ctx context.Context, r registration.Registration) (registration.Registration, error) {
	return s.repo.Save(ctx, r)
}

func (s *RegistrationService) Delete(ctx context.Context, r registration.Registration) error {
	return s.repo.Delete(ctx, r)
}

func (s *RegistrationService) FindAll(ctx context.Context) ([]registration.Registration, error) {
	return s.repo.FindAll(ctx)
}

// Find pages through registrations matching the non-zero fields of example.
func (s *RegistrationService) Find(ctx context.Context, example registration.Registration, pageable page.Pageable) (page.Page[registration.Registration], error) {
	return s.repo.FindByExample(ctx, example, pageable)
}

func found(r registration.Registration, err error) (registration.Registration, bool, error) {
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, err
	}
	return r, true, nil
}
