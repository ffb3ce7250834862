package observability

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ObserveDB times fn under op. A lookup that finds no row is an outcome, not an error.
func (p *Prom) ObserveDB(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"
	if err != nil {
		status = "error"
		if errors.Is(err, pgx.ErrNoRows) {
			status = "no_rows"
		} else {
			p.DbErrorsTotal.WithLabelValues(op, classifyDBErr(err)).Inc()
		}
	}

	p.DbQueryDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	return err
}

var pgErrorClasses = map[string]string{
	pgerrcode.UniqueViolation:      "unique_violation",
	pgerrcode.ForeignKeyViolation:  "foreign_key_violation",
	pgerrcode.SerializationFailure: "serialization_failure",
	pgerrcode.DeadlockDetected:     "deadlock",
	pgerrcode.QueryCanceled:        "query_canceled",
}

func classifyDBErr(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if class, ok := pgErrorClasses[pgErr.Code]; ok {
			return class
		}
		return "pg_" + pgErr.Code
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return "connection"
	}
	return "unknown"
}
