package app

import "time"

// DefaultStatusLifetime is how long a status message stays visible.
const DefaultStatusLifetime = 3 * time.Second

// Severity classifies a status message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Message is a transient, user-facing status line.
type Message struct {
	ID        uint64
	Text      string
	Severity  Severity
	ShownAt   time.Time
	ExpiresAt time.Time
}

// Notifier holds at most one status message. A newer message replaces the
// current one and each message expires Lifetime after it was shown.
type Notifier struct {
	Lifetime time.Duration

	now     func() time.Time
	current *Message
	lastID  uint64
}

// NewNotifier returns a Notifier whose messages live for lifetime.
// A non-positive lifetime selects DefaultStatusLifetime.
func NewNotifier(lifetime time.Duration) *Notifier {
	if lifetime <= 0 {
		lifetime = DefaultStatusLifetime
	}
	return &Notifier{Lifetime: lifetime, now: time.Now}
}

// Show replaces the current message.
func (n *Notifier) Show(text string, sev Severity) Message {
	n.lastID++
	shown := n.now()
	msg := Message{
		ID:        n.lastID,
		Text:      text,
		Severity:  sev,
		ShownAt:   shown,
		ExpiresAt: shown.Add(n.Lifetime),
	}
	n.current = &msg
	return msg
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (Message, bool) {
	if n.current == nil {
		return Message{}, false
	}
	if !n.now().Before(n.current.ExpiresAt) {
		return Message{}, false
	}
	return *n.current, true
}

// Latest returns the most recent message even if it has expired.
func (n *Notifier) Latest() (Message, bool) {
	if n.current == nil {
		return Message{}, false
	}
	return *n.current, true
}

// Dismiss hides the message with the given ID. It returns false, leaving
// things as they are, when a newer message has replaced it.
func (n *Notifier) Dismiss(id uint64) bool {
	if n.current == nil || n.current.ID != id {
		return false
	}
	n.current = nil
	return true
}
