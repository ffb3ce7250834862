package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/meetuphub/internal/config"
	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
)

type MeetupService interface {
	Save(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error)
	GetByID(ctx context.Context, id int) (meetup.Meetup, bool, error)
	FindAll(ctx context.Context, pageable page.Pageable) (page.Page[meetup.Meetup], error)
	Update(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error)
	Delete(ctx context.Context, m meetup.Meetup) error
	GetRegistrationsByMeetup(ctx context.Context, m meetup.Meetup, pageable page.Pageable) (page.Page[registration.Registration], error)
}

type MeetupHandler struct {
	svc MeetupService
}

func NewMeetupHandler(svc MeetupService) *MeetupHandler {
	return &MeetupHandler{svc: svc}
}

// Create answers with the bare id of the new meetup.
func (h *MeetupHandler) Create(ctx *gin.Context) {
	var req meetup.CreateMeetupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	saved, err := h.svc.Save(cctx, meetup.NewFromCreateRequest(req))
	if err != nil {
		RespondInternal(ctx, "Could not create meetup", err)
		return
	}

	ctx.JSON(http.StatusCreated, saved.ID)
}

func (h *MeetupHandler) Get(ctx *gin.Context) {
	m, ok := h.load(ctx, "Could not fetch meetup")
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, meetup.ToResponse(m))
}

func (h *MeetupHandler) List(ctx *gin.Context) {
	pageable, ok := pageableFrom(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.svc.FindAll(cctx, pageable)
	if err != nil {
		RespondInternal(ctx, "Could not list meetups", err)
		return
	}

	ctx.JSON(http.StatusOK, page.Map(result, meetup.ToResponse))
}

func (h *MeetupHandler) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "meetup")
	if !ok {
		return
	}

	var req meetup.UpdateMeetupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	m, found, err := h.svc.GetByID(cctx, id)
	if err != nil {
		RespondInternal(ctx, "Could not update meetup", err)
		return
	}
	if !found {
		RespondNotFound(ctx, "Meetup not found")
		return
	}

	m.ApplyUpdate(req)

	updated, err := h.svc.Update(cctx, m)
	if err != nil {
		if errors.Is(err, meetup.ErrNotFound) {
			RespondNotFound(ctx, "Meetup not found")
			return
		}
		RespondInternal(ctx, "Could not update meetup", err)
		return
	}

	ctx.JSON(http.StatusOK, meetup.ToResponse(updated))
}

func (h *MeetupHandler) Delete(ctx *gin.Context) {
	m, ok := h.load(ctx, "Could not delete meetup")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(cctx, m); err != nil {
		RespondInternal(ctx, "Could not delete meetup", err)
		return
	}

	ctx.Status(http.StatusOK)
}

func (h *MeetupHandler) Registrations(ctx *gin.Context) {
	pageable, ok := pageableFrom(ctx)
	if !ok {
		return
	}

	m, ok := h.load(ctx, "Could not list registrations")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.svc.GetRegistrationsByMeetup(cctx, m, pageable)
	if err != nil {
		RespondInternal(ctx, "Could not list registrations", err)
		return
	}

	ctx.JSON(http.StatusOK, page.Map(result, registration.ToResponse))
}

// load resolves the :id meetup, answering 400/404/500 itself when it cannot.
func (h *MeetupHandler) load(ctx *gin.Context, failure string) (meetup.Meetup, bool) {
	id, ok := pathID(ctx, "id", "meetup")
	if !ok {
		return meetup.Meetup{}, false
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	m, found, err := h.svc.GetByID(cctx, id)
	if err != nil {
		RespondInternal(ctx, failure, err)
		return meetup.Meetup{}, false
	}
	if !found {
		RespondNotFound(ctx, "Meetup not found")
		return meetup.Meetup{}, false
	}

	return m, true
}
