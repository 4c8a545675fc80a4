// Package obs has small logging helpers for timing operations.
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const SearchIDKey ctxKey = "search_id"

// WithSearchID tags ctx so timed operations log the id
func WithSearchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SearchIDKey, id)
}

// SearchID returns the id stored by WithSearchID, or ""
func SearchID(ctx context.Context) string {
	id, _ := ctx.Value(SearchIDKey).(string)
	return id
}

// Time starts a timer for op. Call the returned func (usually deferred) with
// a pointer to the operation's error to log its duration and outcome.
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()
	id := SearchID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("search_id=%s op=%s dur=%dms err=%v", id, op, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("search_id=%s op=%s dur=%dms", id, op, dur.Milliseconds())
	}
}
