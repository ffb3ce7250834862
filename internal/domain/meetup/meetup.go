package meetup

import (
	"errors"
	"time"
)

type Meetup struct {
	ID        int
	Event     string
	Date      string
	OwnerID   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

var ErrNotFound = errors.New("meetup not found")

type CreateMeetupRequest struct {
	Event   string `json:"event" binding:"required,min=3,max=120"`
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	OwnerID int    `json:"ownerId" binding:"required,min=1,max=2147483647"`
}

// a full update payload, same shape as the create payload.
type UpdateMeetupRequest struct {
	Event   string `json:"event" binding:"required,min=3,max=120"`
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	OwnerID int    `json:"ownerId" binding:"required,min=1,max=2147483647"`
}

type Response struct {
	ID      int    `json:"id"`
	Event   string `json:"event"`
	Date    string `json:"date"`
	OwnerID int    `json:"ownerId"`
}
