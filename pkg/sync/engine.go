// Package sync reconciles local activity state with the remote graphs.
package sync

import (
	"context"
	"fmt"
	"log"
	gosync "sync"

	"github.com/stefanpenner/pixtrack/pkg/activity"
	"github.com/stefanpenner/pixtrack/pkg/store"
)

// Remote is the subset of the Pixela API the engine depends on.
type Remote interface {
	Increment(ctx context.Context, creds store.Credentials, graphID string, date store.Date) error
	Quantity(ctx context.Context, creds store.Credentials, graphID string, date store.Date) (int64, error)
}

// Status is what one lookup learned about one activity.
type Status struct {
	Key     string
	Tracked bool
	Err     error // set when the lookup failed; Tracked is then false
}

// Engine issues lookups and increments for registered activities.
type Engine struct {
	remote   Remote
	registry *activity.Registry
}

// NewEngine creates an Engine.
func NewEngine(remote Remote, registry *activity.Registry) *Engine {
	return &Engine{remote: remote, registry: registry}
}

// Registry returns the activity registry the engine serves.
func (e *Engine) Registry() *activity.Registry {
	return e.registry
}

// FetchAll looks up every activity on date concurrently and returns once all
// lookups have settled. Results are in registry order. Each lookup stands
// alone: a failure marks only that activity untracked.
func (e *Engine) FetchAll(ctx context.Context, creds store.Credentials, date store.Date) []Status {
	defs := e.registry.All()
	statuses := make([]Status, len(defs))

	var wg gosync.WaitGroup
	for i, def := range defs {
		wg.Add(1)
		go func(i int, def activity.Definition) {
			defer wg.Done()
			statuses[i] = e.lookup(ctx, creds, def, date)
		}(i, def)
	}
	wg.Wait()

	return statuses
}

func (e *Engine) lookup(ctx context.Context, creds store.Credentials, def activity.Definition, date store.Date) (st Status) {
	st.Key = def.Key
	defer func() {
		if r := recover(); r != nil {
			st = Status{Key: def.Key, Err: fmt.Errorf("lookup panicked: %v", r)}
		}
		if st.Err != nil {
			log.Printf("error loading %s for %s: %v", def.Name, date, st.Err)
		}
	}()

	q, err := e.remote.Quantity(ctx, creds, def.GraphID, date)
	if err != nil {
		return Status{Key: def.Key, Err: err}
	}
	return Status{Key: def.Key, Tracked: q > 0}
}

// Track records one unit for the activity key on date.
func (e *Engine) Track(ctx context.Context, creds store.Credentials, key string, date store.Date) error {
	def, ok := e.registry.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown activity %q", key)
	}
	if err := e.remote.Increment(ctx, creds, def.GraphID, date); err != nil {
		log.Printf("error tracking %s for %s: %v", def.Name, date, err)
		return err
	}
	return nil
}
