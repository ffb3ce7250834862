package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const meetupColumns = `id, event, meetup_date, owner_id, created_at, updated_at`

type MeetupsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// constructor function

func NewMeetupsRepo(pool *pgxpool.Pool, prom *observability.Prom) *MeetupsRepo {
	return &MeetupsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *MeetupsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanMeetup(row rowScanner) (meetup.Meetup, error) {
	var m meetup.Meetup
	err := row.Scan(&m.ID, &m.Event, &m.Date, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MeetupsRepo) Save(ctx context.Context, m meetup.Meetup) (saved meetup.Meetup, err error) {
	if m.ID == 0 {
		err = r.observe("meetups.insert", func() error {
			var e error
			saved, e = scanMeetup(r.pool.QueryRow(ctx,
				`INSERT INTO meetups (event, meetup_date, owner_id, created_at, updated_at)
				VALUES ($1,$2,$3,NOW(),NOW())
				RETURNING `+meetupColumns,
				m.Event, m.Date, m.OwnerID,
			))
			return e
		})

		if err != nil {
			return meetup.Meetup{}, err
		}
		return saved, nil
	}

	err = r.observe("meetups.update", func() error {
		var e error
		saved, e = scanMeetup(r.pool.QueryRow(ctx,
			`UPDATE meetups
				SET event = $2,
						meetup_date = $3,
						owner_id = $4,
						updated_at = NOW()
			WHERE id = $1
			RETURNING `+meetupColumns,
			m.ID, m.Event, m.Date, m.OwnerID,
		))
		return e
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return meetup.Meetup{}, meetup.ErrNotFound
		}
		return meetup.Meetup{}, err
	}

	return saved, nil
}

func (r *MeetupsRepo) FindByID(ctx context.Context, id int) (m meetup.Meetup, err error) {
	err = r.observe("meetups.find_by_id", func() error {
		var e error
		m, e = scanMeetup(r.pool.QueryRow(ctx, `SELECT `+meetupColumns+` FROM meetups WHERE id = $1`, id))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return meetup.Meetup{}, meetup.ErrNotFound
		}
		return meetup.Meetup{}, err
	}

	return m, nil
}

func (r *MeetupsRepo) FindPage(ctx context.Context, pageable page.Pageable) (page.Page[meetup.Meetup], error) {
	var total int

	err := r.observe("meetups.count", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM meetups`).Scan(&total)
	})
	if err != nil {
		return page.Page[meetup.Meetup]{}, err
	}

	var rows pgx.Rows

	err = r.observe("meetups.find_page", func() error {
		var qerr error
		rows, qerr = r.pool.Query(ctx,
			`SELECT `+meetupColumns+` FROM meetups ORDER BY id ASC LIMIT $1 OFFSET $2`,
			pageable.Limit(), pageable.Offset(),
		)
		return qerr
	})
	if err != nil {
		return page.Page[meetup.Meetup]{}, err
	}

	defer rows.Close()

	output := make([]meetup.Meetup, 0, pageable.Limit())

	for rows.Next() {
		m, err := scanMeetup(rows)
		if err != nil {
			return page.Page[meetup.Meetup]{}, err
		}
		output = append(output, m)
	}

	if err := rows.Err(); err != nil {
		return page.Page[meetup.Meetup]{}, err
	}

	return page.New(output, pageable, total), nil
}

// Delete removes the meetup; its registrations are detached by the foreign key.
func (r *MeetupsRepo) Delete(ctx context.Context, m meetup.Meetup) error {
	return r.observe("meetups.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM meetups WHERE id = $1`, m.ID)
		return err
	})
}
