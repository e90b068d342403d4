// Package sql provides stream producers for database operations using
// database/sql. It bridges row iteration into the push protocol: each
// Subscribe runs the query in a fresh continuation and pushes each
// scanned row downstream.
package sql

import (
	"context"
	"database/sql"

	"github.com/ottonascarella/pipes/stream/core"
)

// Scanner is a function that scans a row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query creates a Stream that executes the query on Subscribe and
// emits one value per row, followed by Complete. Query, scan and
// iteration errors are terminal and routed to the error callback.
// Unsubscribing cancels the query context; rows already in flight are
// suppressed by the activation guard.
func Query[T any](db *sql.DB, query string, scanner Scanner[T], args ...any) core.Stream[T] {
	return core.New(func(sink core.Sink[T]) core.Subscription {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			defer cancel()
			rows, err := db.QueryContext(ctx, query, args...)
			if err != nil {
				sink.Error(err)
				return
			}
			defer rows.Close()
			for rows.Next() {
				value, err := scanner(rows)
				if err != nil {
					sink.Error(err)
					return
				}
				sink.Next(value)
			}
			if err := rows.Err(); err != nil {
				sink.Error(err)
				return
			}
			sink.Complete()
		}()
		return core.NewSubscription(cancel)
	})
}

// QueryRow creates a Stream that executes a query expecting a single
// row, emits it, then completes.
func QueryRow[T any](db *sql.DB, query string, scanner func(*sql.Row) (T, error), args ...any) core.Stream[T] {
	return core.New(func(sink core.Sink[T]) core.Subscription {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			defer cancel()
			row := db.QueryRowContext(ctx, query, args...)
			value, err := scanner(row)
			if err != nil {
				sink.Error(err)
				return
			}
			sink.Next(value)
			sink.Complete()
		}()
		return core.NewSubscription(cancel)
	})
}
