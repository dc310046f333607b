// Package readiness blocks process startup until the datastore accepts
// connections.
package readiness

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Pinger is the minimal connectivity check the gate needs. *sqlx.DB and
// *sql.DB both satisfy it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Wait pings the datastore in a loop until it responds, sleeping interval
// between attempts. There is no retry cap and no backoff growth: the gate runs
// once at boot and is bounded by process lifetime. Progress is written to out.
// The only failure path is context cancellation.
func Wait(ctx context.Context, db Pinger, out io.Writer, interval time.Duration) error {
	fmt.Fprintln(out, "Waiting for database...")

	for {
		if err := db.PingContext(ctx); err == nil {
			fmt.Fprintln(out, "Database available!")
			return nil
		} else if ctx.Err() != nil {
			return ctx.Err()
		} else {
			fmt.Fprintf(out, "Database unavailable, waiting %s: %v\n", interval, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
