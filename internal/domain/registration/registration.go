package registration

import (
	"errors"
	"time"
)

// DateLayout is the wire format of dateOfRegistration.
const DateLayout = "2006-01-02"

type Registration struct {
	ID                 int
	Name               string
	RegistrationCode   string
	DateOfRegistration time.Time
	MeetupID           *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

var (
	ErrNotFound              = errors.New("registration not found")
	ErrDuplicateRegistration = errors.New("registration already created")
)

type CreateRegistrationRequest struct {
	Name               string `json:"name" binding:"required,min=2,max=120"`
	RegistrationCode   string `json:"registrationCode" binding:"required,max=64"`
	DateOfRegistration string `json:"dateOfRegistration" binding:"required,datetime=2006-01-02"`
	MeetupID           *int   `json:"meetupId" binding:"omitempty,min=1,max=2147483647"`
}

// only name and date can change once a registration exists.
type UpdateRegistrationRequest struct {
	Name               string `json:"name" binding:"required,min=2,max=120"`
	DateOfRegistration string `json:"dateOfRegistration" binding:"required,datetime=2006-01-02"`
}

type Response struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	RegistrationCode   string `json:"registrationCode"`
	DateOfRegistration string `json:"dateOfRegistration"`
	MeetupID           *int   `json:"meetupId,omitempty"`
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Matches reports whether r equals every non-zero field of example.
func (r Registration) Matches(example Registration) bool {
	if example.ID != 0 && r.ID != example.ID {
		return false
	}
	if example.Name != "" && r.Name != example.Name {
		return false
	}
	if example.RegistrationCode != "" && r.RegistrationCode != example.RegistrationCode {
		return false
	}
	if !example.DateOfRegistration.IsZero() && !Day(r.DateOfRegistration).Equal(Day(example.DateOfRegistration)) {
		return false
	}
	if example.MeetupID != nil && (r.MeetupID == nil || *r.MeetupID != *example.MeetupID) {
		return false
	}
	return true
}
