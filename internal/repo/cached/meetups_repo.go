package cached

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/geocoder89/meetuphub/internal/cache"
	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/observability"
	"github.com/geocoder89/meetuphub/internal/service"
)

const cacheSpace = "meetups"

// MeetupsRepo is a read-through cache in front of another meetup repository.
// Cache failures never fail a request; the inner repository stays the source of truth.
type MeetupsRepo struct {
	inner service.MeetupRepository
	store cache.Store
	prom  *observability.Prom
	log   *slog.Logger
	gen   atomic.Int64
}

func NewMeetupsRepo(inner service.MeetupRepository, store cache.Store, prom *observability.Prom, log *slog.Logger) *MeetupsRepo {
	if log == nil {
		log = slog.Default()
	}
	return &MeetupsRepo{inner: inner, store: store, prom: prom, log: log}
}

func (r *MeetupsRepo) observe(hit bool, err error) {
	if r.prom != nil {
		r.prom.ObserveCache(cacheSpace, hit, err)
	}
	if err != nil {
		r.log.Warn("meetup cache failure", "err", err)
	}
}

func (r *MeetupsRepo) FindByID(ctx context.Context, id int) (meetup.Meetup, error) {
	key := meetupKey(r.gen.Load(), id)

	var m meetup.Meetup
	hit, err := r.store.Get(ctx, key, &m)
	r.observe(hit, err)
	if hit {
		return m, nil
	}

	m, err = r.inner.FindByID(ctx, id)
	if err != nil {
		return meetup.Meetup{}, err
	}

	if err := r.store.Set(ctx, key, m); err != nil {
		r.log.Warn("meetup cache set failed", "key", key, "err", err)
	}
	return m, nil
}

func (r *MeetupsRepo) FindPage(ctx context.Context, pageable page.Pageable) (page.Page[meetup.Meetup], error) {
	key := meetupsPageKey(r.gen.Load(), pageable)

	var p page.Page[meetup.Meetup]
	hit, err := r.store.Get(ctx, key, &p)
	r.observe(hit, err)
	if hit {
		return p, nil
	}

	p, err = r.inner.FindPage(ctx, pageable)
	if err != nil {
		return page.Page[meetup.Meetup]{}, err
	}

	if err := r.store.Set(ctx, key, p); err != nil {
		r.log.Warn("meetup cache set failed", "key", key, "err", err)
	}
	return p, nil
}

func (r *MeetupsRepo) Save(ctx context.Context, m meetup.Meetup) (meetup.Meetup, error) {
	saved, err := r.inner.Save(ctx, m)
	if err != nil {
		return meetup.Meetup{}, err
	}

	r.invalidate(ctx, saved.ID)
	return saved, nil
}

func (r *MeetupsRepo) Delete(ctx context.Context, m meetup.Meetup) error {
	if err := r.inner.Delete(ctx, m); err != nil {
		return err
	}

	r.invalidate(ctx, m.ID)
	return nil
}

// invalidate moves readers to a fresh generation and drops the entry the
// previous one may hold for id.
func (r *MeetupsRepo) invalidate(ctx context.Context, id int) {
	prev := r.gen.Add(1) - 1
	if err := r.store.Delete(ctx, meetupKey(prev, id)); err != nil {
		r.log.Warn("meetup cache invalidate failed", "id", id, "err", err)
	}
}
