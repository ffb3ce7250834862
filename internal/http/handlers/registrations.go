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

type RegistrationService interface {
	Save(ctx context.Context, r registration.Registration) (registration.Registration, error)
	GetByID(ctx context.Context, id int) (registration.Registration, bool, error)
	Update(ctx context.Context, r registration.Registration) (registration.Registration, error)
	Delete(ctx context.Context, r registration.Registration) error
	Find(ctx context.Context, example registration.Registration, pageable page.Pageable) (page.Page[registration.Registration], error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) Create(ctx *gin.Context) {
	var req registration.CreateRegistrationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	reg, err := registration.NewFromCreateRequest(req)
	if err != nil {
		RespondBadRequest(ctx, "Invalid request body", gin.H{"field": "dateOfRegistration"})
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	saved, err := h.svc.Save(cctx, reg)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrDuplicateRegistration):
			RespondConflict(ctx, "duplicate_registration", "Registration already created")
		case errors.Is(err, meetup.ErrNotFound):
			RespondNotFound(ctx, "Meetup not found")
		default:
			RespondInternal(ctx, "Could not create registration", err)
		}
		return
	}

	ctx.JSON(http.StatusAccepted, registration.ToResponse(saved))
}

func (h *RegistrationHandler) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "registration")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	reg, found, err := h.svc.GetByID(cctx, id)
	if err != nil {
		RespondInternal(ctx, "Could not fetch registration", err)
		return
	}
	if !found {
		RespondNotFound(ctx, "Registration not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, registration.ToResponse(reg))
}

func (h *RegistrationHandler) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "registration")
	if !ok {
		return
	}

	var req registration.UpdateRegistrationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	reg, found, err := h.svc.GetByID(cctx, id)
	if err != nil {
		RespondInternal(ctx, "Could not update registration", err)
		return
	}
	if !found {
		RespondNotFound(ctx, "Registration not found")
		return
	}

	if err := reg.ApplyUpdate(req); err != nil {
		RespondBadRequest(ctx, "Invalid request body", gin.H{"field": "dateOfRegistration"})
		return
	}

	updated, err := h.svc.Update(cctx, reg)
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			RespondNotFound(ctx, "Registration not found")
			return
		}
		RespondInternal(ctx, "Could not update registration", err)
		return
	}

	ctx.JSON(http.StatusOK, registration.ToResponse(updated))
}

func (h *RegistrationHandler) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "registration")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	reg, found, err := h.svc.GetByID(cctx, id)
	if err != nil {
		RespondInternal(ctx, "Could not delete registration", err)
		return
	}
	if !found {
		RespondNotFound(ctx, "Registration not found")
		return
	}

	if err := h.svc.Delete(cctx, reg); err != nil {
		RespondInternal(ctx, "Could not delete registration", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// List answers GET /api/registration with the records matching the query filters.
func (h *RegistrationHandler) List(ctx *gin.Context) {
	pageable, ok := pageableFrom(ctx)
	if !ok {
		return
	}

	example, ok := exampleFromQuery(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.svc.Find(cctx, example, pageable)
	if err != nil {
		RespondInternal(ctx, "Could not list registrations", err)
		return
	}

	ctx.JSON(http.StatusOK, page.Map(result, registration.ToResponse))
}

func exampleFromQuery(ctx *gin.Context) (registration.Registration, bool) {
	example := registration.Registration{
		Name:             ctx.Query("name"),
		RegistrationCode: ctx.Query("registrationCode"),
	}

	if raw := ctx.Query("dateOfRegistration"); raw != "" {
		date, err := registration.ParseDate(raw)
		if err != nil {
			RespondBadRequest(ctx, "dateOfRegistration must be formatted as YYYY-MM-DD", gin.H{"field": "dateOfRegistration"})
			return registration.Registration{}, false
		}
		example.DateOfRegistration = date
	}

	if raw := ctx.Query("meetupId"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			RespondBadRequest(ctx, "meetupId must be a positive 32-bit integer", gin.H{"field": "meetupId"})
			return registration.Registration{}, false
		}
		example.MeetupID = &id
	}

	return example, true
}
