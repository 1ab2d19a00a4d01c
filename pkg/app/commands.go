package app

import (
	"context"

	gsync "github.com/stefanpenner/pixtrack/pkg/sync"
	"github.com/stefanpenner/pixtrack/pkg/store"
)

// Command is a user intent consumed by Controller.Dispatch.
type Command interface {
	isCommand()
}

// SaveSettings stores credentials, persisting them when Remember is set.
type SaveSettings struct {
	Username string
	Token    string
	Remember bool
}

// SelectDate switches to the date typed by the user. Unparseable input
// selects today.
type SelectDate struct {
	Input string
}

// SetDate switches to an already-parsed date.
type SetDate struct {
	Date store.Date
}

// ResetDate switches back to today.
type ResetDate struct{}

// ShiftDate moves the selected date by Days.
type ShiftDate struct {
	Days int
}

// TrackActivity records one unit for Key on the selected date.
type TrackActivity struct {
	Key string
}

// Refresh re-reads the selected date from the remote side.
type Refresh struct{}

// OpenSettings shows the settings dialog.
type OpenSettings struct{}

// CloseSettings hides the settings dialog.
type CloseSettings struct{}

// ReloadCredentials re-reads persisted credentials, e.g. after another
// process changed them.
type ReloadCredentials struct{}

func (SaveSettings) isCommand()      {}
func (SelectDate) isCommand()        {}
func (SetDate) isCommand()           {}
func (ResetDate) isCommand()         {}
func (ShiftDate) isCommand()         {}
func (TrackActivity) isCommand()     {}
func (Refresh) isCommand()           {}
func (OpenSettings) isCommand()      {}
func (CloseSettings) isCommand()     {}
func (ReloadCredentials) isCommand() {}

// Event is the result of an Effect, folded back in by Controller.Apply.
type Event interface {
	isEvent()
}

// RefreshCompleted carries every lookup of one refresh batch.
type RefreshCompleted struct {
	Generation uint64
	Date       store.Date
	Statuses   []gsync.Status
}

// TrackCompleted carries the outcome of one increment.
type TrackCompleted struct {
	Key  string
	Date store.Date
	Err  error
}

func (RefreshCompleted) isEvent() {}
func (TrackCompleted) isEvent()   {}

// Effect performs remote I/O off the update loop and reports back an Event.
type Effect func(ctx context.Context) Event
