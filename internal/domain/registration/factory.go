package registration

import "time"

// A factory to build a Registration from the incoming DTO

func NewFromCreateRequest(req CreateRegistrationRequest) (Registration, error) {
	date, err := ParseDate(req.DateOfRegistration)
	if err != nil {
		return Registration{}, err
	}

	now := time.Now().UTC()

	return Registration{
		Name:               req.Name,
		RegistrationCode:   req.RegistrationCode,
		DateOfRegistration: date,
		MeetupID:           req.MeetupID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (r *Registration) ApplyUpdate(req UpdateRegistrationRequest) error {
	date, err := ParseDate(req.DateOfRegistration)
	if err != nil {
		return err
	}

	r.Name = req.Name
	r.DateOfRegistration = date
	r.UpdatedAt = time.Now().UTC()

	return nil
}

func ToResponse(r Registration) Response {
	return Response{
		ID:                 r.ID,
		Name:               r.Name,
		RegistrationCode:   r.RegistrationCode,
		DateOfRegistration: r.DateOfRegistration.Format(DateLayout),
		MeetupID:           r.MeetupID,
	}
}
