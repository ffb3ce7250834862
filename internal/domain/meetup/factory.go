package meetup

import "time"

func NewFromCreateRequest(req CreateMeetupRequest) Meetup {
	now := time.Now().UTC()

	return Meetup{
		Event:     req.Event,
		Date:      req.Date,
		OwnerID:   req.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (m *Meetup) ApplyUpdate(req UpdateMeetupRequest) {
	m.Event = req.Event
	m.Date = req.Date
	m.OwnerID = req.OwnerID
	m.UpdatedAt = time.Now().UTC()
}

func ToResponse(m Meetup) Response {
	return Response{
		ID:      m.ID,
		Event:   m.Event,
		Date:    m.Date,
		OwnerID: m.OwnerID,
	}
}
