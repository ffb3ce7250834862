package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geocoder89/meetuphub/internal/domain/meetup"
	"github.com/geocoder89/meetuphub/internal/domain/page"
	"github.com/geocoder89/meetuphub/internal/domain/registration"
	"github.com/geocoder89/meetuphub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const registrationColumns = `id, name, registration_code, date_of_registration, meetup_id, created_at, updated_at`

type RegistrationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRegistrationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RegistrationsRepo {
	return &RegistrationsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *RegistrationsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanRegistration(row rowScanner) (registration.Registration, error) {
	var r registration.Registration

	err := row.Scan(&r.ID, &r.Name, &r.RegistrationCode, &r.DateOfRegistration, &r.MeetupID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return registration.Registration{}, err
	}

	r.DateOfRegistration = registration.Day(r.DateOfRegistration)
	return r, nil
}

// Save inserts r when it has no id yet, otherwise overwrites the stored row.
func (repo *RegistrationsRepo) Save(ctx context.Context, r registration.Registration) (saved registration.Registration, err error) {
	if r.ID == 0 {
		err = repo.observe("registrations.insert", func() error {
			var e error
			saved, e = scanRegistration(repo.pool.QueryRow(ctx, `
			INSERT INTO registrations (name, registration_code, date_of_registration, meetup_id, created_at, updated_at)
			VALUES ($1,$2,$3,$4,NOW(),NOW())
			RETURNING `+registrationColumns,
				r.Name, r.RegistrationCode, registration.Day(r.DateOfRegistration), r.MeetupID,
			))
			return e
		})
	} else {
		err = repo.observe("registrations.update", func() error {
			var e error
			saved, e = scanRegistration(repo.pool.QueryRow(ctx, `
			UPDATE registrations
				SET name = $2,
						registration_code = $3,
						date_of_registration = $4,
						meetup_id = $5,
						updated_at = NOW()
			WHERE id = $1
			RETURNING `+registrationColumns,
				r.ID, r.Name, r.RegistrationCode, registration.Day(r.DateOfRegistration), r.MeetupID,
			))
			return e
		})
	}

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			err = registration.ErrNotFound
		case isConstraintViolation(err, uniqueViolation, registrationCodeConstraint):
			err = registration.ErrDuplicateRegistration
		case isConstraintViolation(err, foreignKeyViolation, registrationMeetupFK):
			err = meetup.ErrNotFound
		}
		return registration.Registration{}, err
	}

	return saved, nil
}

func (repo *RegistrationsRepo) FindByID(ctx context.Context, id int) (registration.Registration, error) {
	return repo.findOne(ctx, "registrations.find_by_id", `id = $1`, id)
}

func (repo *RegistrationsRepo) FindByRegistrationCode(ctx context.Context, code string) (registration.Registration, error) {
	return repo.findOne(ctx, "registrations.find_by_code", `registration_code = $1`, code)
}

func (repo *RegistrationsRepo) findOne(ctx context.Context, op, cond string, arg any) (r registration.Registration, err error) {
	err = repo.observe(op, func() error {
		var e error
		r, e = scanRegistration(repo.pool.QueryRow(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE `+cond, arg))
		return e
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return registration.Registration{}, registration.ErrNotFound
		}
		return registration.Registration{}, err
	}

	return r, nil
}

func (repo *RegistrationsRepo) ExistsByRegistrationCode(ctx context.Context, code string) (exists bool, err error) {
	err = repo.observe("registrations.exists_by_code", func() error {
		return repo.pool.QueryRow(ctx, `SELECT EXISTS(
			SELECT 1 FROM registrations WHERE registration_code = $1
		)`, code).Scan(&exists)
	})
	return
}

func (repo *RegistrationsRepo) FindAll(ctx context.Context) ([]registration.Registration, error) {
	return repo.list(ctx, "registrations.find_all", `SELECT `+registrationColumns+` FROM registrations ORDER BY id ASC`)
}

// FindByExample filters on every non-zero field of example.
func (repo *RegistrationsRepo) FindByExample(ctx context.Context, example registration.Registration, pageable page.Pageable) (page.Page[registration.Registration], error) {
	var conds []string
	var args []interface{}

	argsPosition := 1

	if example.ID != 0 {
		conds = append(conds, fmt.Sprintf("id = $%d", argsPosition))
		args = append(args, example.ID)
		argsPosition++
	}

	if example.Name != "" {
		conds = append(conds, fmt.Sprintf("name = $%d", argsPosition))
		args = append(args, example.Name)
		argsPosition++
	}

	if example.RegistrationCode != "" {
		conds = append(conds, fmt.Sprintf("registration_code = $%d", argsPosition))
		args = append(args, example.RegistrationCode)
		argsPosition++
	}

	if !example.DateOfRegistration.IsZero() {
		conds = append(conds, fmt.Sprintf("date_of_registration = $%d", argsPosition))
		args = append(args, registration.Day(example.DateOfRegistration))
		argsPosition++
	}

	if example.MeetupID != nil {
		conds = append(conds, fmt.Sprintf("meetup_id = $%d", argsPosition))
		args = append(args, *example.MeetupID)
		argsPosition++
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	return repo.paged(ctx, "registrations.find_by_example", where, args, pageable)
}

func (repo *RegistrationsRepo) FindByMeetup(ctx context.Context, meetupID int, pageable page.Pageable) (page.Page[registration.Registration], error) {
	return repo.paged(ctx, "registrations.find_by_meetup", " WHERE meetup_id = $1", []interface{}{meetupID}, pageable)
}

// Delete is a no-op when the row is already gone.
func (repo *RegistrationsRepo) Delete(ctx context.Context, r registration.Registration) error {
	return repo.observe("registrations.delete", func() error {
		_, err := repo.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, r.ID)
		return err
	})
}

func (repo *RegistrationsRepo) paged(ctx context.Context, op, where string, args []interface{}, pageable page.Pageable) (page.Page[registration.Registration], error) {
	var total int

	err := repo.observe(op+".count", func() error {
		return repo.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`+where, args...).Scan(&total)
	})
	if err != nil {
		return page.Page[registration.Registration]{}, err
	}

	// stable ordering for pagination
	query := fmt.Sprintf(`SELECT %s FROM registrations%s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		registrationColumns, where, len(args)+1, len(args)+2)

	items, err := repo.list(ctx, op, query, append(args, pageable.Limit(), pageable.Offset())...)
	if err != nil {
		return page.Page[registration.Registration]{}, err
	}

	return page.New(items, pageable, total), nil
}

func (repo *RegistrationsRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]registration.Registration, error) {
	var rows pgx.Rows

	err := repo.observe(op, func() error {
		var qerr error
		rows, qerr = repo.pool.Query(ctx, query, args...)
		return qerr
	})
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]registration.Registration, 0)

	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		if repo.prom != nil {
			repo.prom.DbErrorsTotal.WithLabelValues(op, "rows_err").Inc()
		}
		return nil, err
	}

	return out, nil
}
