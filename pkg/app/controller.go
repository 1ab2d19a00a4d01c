package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/stefanpenner/pixtrack/pkg/activity"
	"github.com/stefanpenner/pixtrack/pkg/observability"
	"github.com/stefanpenner/pixtrack/pkg/store"
	gsync "github.com/stefanpenner/pixtrack/pkg/sync"
)

var (
	// ErrValidation is returned when settings are saved without a username or token.
	ErrValidation = errors.New("please enter both username and token")
	// ErrNotConfigured is returned when a remote call is requested without credentials.
	ErrNotConfigured = errors.New("please configure settings first")
	// ErrUnknownActivity is returned for activity keys missing from the registry.
	ErrUnknownActivity = errors.New("unknown activity")
)

// CredentialStore persists credentials between runs.
type CredentialStore interface {
	LoadCredentials() (store.Credentials, bool, error)
	SaveCredentials(store.Credentials) error
	ClearCredentials() error
}

// Controller owns State and is the only thing that mutates it.
type Controller struct {
	state    State
	engine   *gsync.Engine
	creds    CredentialStore
	notifier *Notifier
	today    func() store.Date
}

// Option configures a Controller.
type Option func(*Controller)

// WithToday overrides how the controller learns the current date.
func WithToday(today func() store.Date) Option {
	return func(c *Controller) { c.today = today }
}

// WithNotifier replaces the default status notifier.
func WithNotifier(n *Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// NewController creates a Controller with today selected and no credentials.
func NewController(engine *gsync.Engine, creds CredentialStore, opts ...Option) *Controller {
	c := &Controller{
		engine:   engine,
		creds:    creds,
		notifier: NewNotifier(DefaultStatusLifetime),
		today:    store.Today,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.Date = c.today()
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	return c.state.clone()
}

// Notifier returns the status notifier.
func (c *Controller) Notifier() *Notifier {
	return c.notifier
}

// Registry returns the activity registry.
func (c *Controller) Registry() *activity.Registry {
	return c.engine.Registry()
}

// Start loads persisted credentials and, when present, refreshes today.
// Without credentials it opens settings and issues no remote calls.
func (c *Controller) Start() []Effect {
	c.state.Date = c.today()

	creds, ok, err := c.creds.LoadCredentials()
	if err != nil {
		log.Printf("loading credentials: %v", err)
		c.notifier.Show("Could not read saved settings: "+err.Error(), SeverityError)
	}
	if !ok {
		c.state.SettingsOpen = true
		return nil
	}

	c.state.Credentials = creds
	c.state.Remembered = true
	return c.refresh()
}

// Dispatch applies a command. Effects it returns must be run and their events
// passed to Apply. A non-nil error has already been shown to the user.
func (c *Controller) Dispatch(cmd Command) ([]Effect, error) {
	switch cmd := cmd.(type) {
	case SaveSettings:
		return c.saveSettings(cmd)
	case SelectDate:
		d, err := store.ParseDate(cmd.Input, c.today())
		if err != nil {
			log.Printf("%v, using today", err)
		}
		return c.changeDate(d), nil
	case SetDate:
		if cmd.Date.IsZero() {
			return c.changeDate(c.today()), nil
		}
		return c.changeDate(cmd.Date), nil
	case ResetDate:
		return c.changeDate(c.today()), nil
	case ShiftDate:
		return c.changeDate(c.state.Date.AddDays(cmd.Days)), nil
	case TrackActivity:
		return c.track(cmd.Key)
	case Refresh:
		if !c.state.Configured() {
			c.needsSettings()
			return nil, ErrNotConfigured
		}
		c.state.Tracked.Clear()
		return c.refresh(), nil
	case OpenSettings:
		c.state.SettingsOpen = true
		return nil, nil
	case CloseSettings:
		c.state.SettingsOpen = false
		return nil, nil
	case ReloadCredentials:
		return c.reloadCredentials(), nil
	default:
		return nil, fmt.Errorf("unsupported command %T", cmd)
	}
}

// Apply folds the result of an Effect into State. Refresh results for a
// batch that is no longer current are discarded. A non-nil error has already
// been shown to the user.
func (c *Controller) Apply(ev Event) ([]Effect, error) {
	switch ev := ev.(type) {
	case RefreshCompleted:
		c.applyRefresh(ev)
		return nil, nil
	case TrackCompleted:
		return nil, c.applyTrack(ev)
	default:
		return nil, fmt.Errorf("unsupported event %T", ev)
	}
}

func (c *Controller) saveSettings(cmd SaveSettings) ([]Effect, error) {
	creds := store.Credentials{Username: cmd.Username, Token: cmd.Token}.Trimmed()
	if !creds.Complete() {
		c.notifier.Show("Please enter both username and token", SeverityError)
		return nil, ErrValidation
	}

	c.state.Credentials = creds
	c.state.SettingsOpen = false

	var persistErr error
	if cmd.Remember {
		persistErr = c.creds.SaveCredentials(creds)
	} else {
		persistErr = c.creds.ClearCredentials()
	}
	if persistErr != nil {
		log.Printf("persisting credentials: %v", persistErr)
		c.notifier.Show("Settings applied but not saved: "+persistErr.Error(), SeverityError)
	} else {
		c.state.Remembered = cmd.Remember
		c.notifier.Show("Settings saved successfully!", SeveritySuccess)
	}

	c.state.Tracked.Clear()
	return c.refresh(), nil
}

func (c *Controller) reloadCredentials() []Effect {
	creds, ok, err := c.creds.LoadCredentials()
	if err != nil {
		log.Printf("reloading credentials: %v", err)
		return nil
	}
	if !ok {
		// Removed elsewhere; the session keeps its credentials.
		c.state.Remembered = false
		return nil
	}
	if creds == c.state.Credentials {
		return nil
	}

	c.state.Credentials = creds
	c.state.Remembered = true
	c.state.SettingsOpen = false
	c.state.Tracked.Clear()
	c.notifier.Show("Settings reloaded", SeverityInfo)
	return c.refresh()
}

// changeDate selects d and drops everything known about the previous date.
func (c *Controller) changeDate(d store.Date) []Effect {
	c.state.Date = d
	c.state.Tracked.Clear()
	c.state.LookupErrors = nil
	if !c.state.Configured() {
		// Invalidate anything still in flight for the old date.
		c.state.generation++
		c.state.Refreshing = false
		c.state.confirmed.Clear()
		c.needsSettings()
		return nil
	}
	return c.refresh()
}

// refresh starts a new lookup batch for the selected date. Any batch still in
// flight becomes stale.
func (c *Controller) refresh() []Effect {
	c.state.generation++
	c.state.Refreshing = true
	c.state.confirmed.Clear()

	gen := c.state.generation
	date := c.state.Date
	creds := c.state.Credentials
	engine := c.engine

	return []Effect{func(ctx context.Context) Event {
		return RefreshCompleted{
			Generation: gen,
			Date:       date,
			Statuses:   engine.FetchAll(ctx, creds, date),
		}
	}}
}

func (c *Controller) applyRefresh(ev RefreshCompleted) {
	if ev.Generation != c.state.generation || ev.Date != c.state.Date {
		log.Printf("discarding stale refresh for %s", ev.Date)
		observability.RecordStaleBatch()
		return
	}

	c.state.Refreshing = false
	c.state.Tracked.Clear()
	c.state.LookupErrors = nil
	for _, st := range ev.Statuses {
		if st.Err != nil {
			if c.state.LookupErrors == nil {
				c.state.LookupErrors = make(map[string]string)
			}
			c.state.LookupErrors[st.Key] = st.Err.Error()
			continue
		}
		if st.Tracked {
			c.state.Tracked.Add(st.Key)
		}
	}
	for _, key := range c.state.confirmed.Keys() {
		c.state.Tracked.Add(key)
		delete(c.state.LookupErrors, key)
	}
	c.state.confirmed.Clear()
}

func (c *Controller) track(key string) ([]Effect, error) {
	if !c.state.Configured() {
		c.needsSettings()
		return nil, ErrNotConfigured
	}
	def, ok := c.Registry().Lookup(key)
	if !ok {
		c.notifier.Show("Error: unknown activity "+key, SeverityError)
		return nil, fmt.Errorf("%w: %s", ErrUnknownActivity, key)
	}

	c.notifier.Show("Tracking "+def.Name+"...", SeverityInfo)

	date := c.state.Date
	creds := c.state.Credentials
	engine := c.engine
	return []Effect{func(ctx context.Context) Event {
		return TrackCompleted{Key: key, Date: date, Err: engine.Track(ctx, creds, key, date)}
	}}, nil
}

func (c *Controller) applyTrack(ev TrackCompleted) error {
	def, _ := c.Registry().Lookup(ev.Key)

	if ev.Err != nil {
		c.notifier.Show("Error: "+ev.Err.Error(), SeverityError)
		return ev.Err
	}

	if ev.Date != c.state.Date {
		c.notifier.Show(fmt.Sprintf("%s tracked for %s!", def.Label(), ev.Date), SeveritySuccess)
		return nil
	}

	c.state.Tracked.Add(ev.Key)
	delete(c.state.LookupErrors, ev.Key)
	if c.state.Refreshing {
		c.state.confirmed.Add(ev.Key)
	}
	c.notifier.Show(def.Label()+" tracked!", SeveritySuccess)
	return nil
}

func (c *Controller) needsSettings() {
	c.state.SettingsOpen = true
	c.notifier.Show("Please configure settings first", SeverityError)
}
