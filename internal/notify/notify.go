// Package notify delivers transient, auto-dismissing user notifications.
// Failures are always surfaced here, never silently dropped.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// DefaultDuration is how long a notification stays up before auto-dismissal.
const DefaultDuration = 5 * time.Second

// Notification is one transient message.
type Notification struct {
	ID       uuid.UUID
	Message  string
	Severity Severity
	Duration time.Duration
}

// Notifier accepts notifications for display.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(n Notification)

// Notify calls f.
func (f Func) Notify(n Notification) { f(n) }

// Error builds an error notification with the default duration and a fresh id.
func Error(message string) Notification {
	return Notification{ID: uuid.New(), Message: message, Severity: SeverityError, Duration: DefaultDuration}
}

// Info builds an info notification with the default duration and a fresh id.
func Info(message string) Notification {
	return Notification{ID: uuid.New(), Message: message, Severity: SeverityInfo, Duration: DefaultDuration}
}

// Dispatcher fans notifications out to subscribers and schedules their
// dismissal. The console sink also logs each message so nothing is lost
// when no subscriber is attached.
type Dispatcher struct {
	mu      sync.Mutex
	subs    map[int]chan Notification
	nextSub int
	quiet   bool
}

// NewDispatcher returns a Dispatcher. When quiet is false each notification
// is also written to the process log.
func NewDispatcher(quiet bool) *Dispatcher {
	return &Dispatcher{subs: make(map[int]chan Notification), quiet: quiet}
}

// Notify delivers n to all subscribers and schedules a dismissal event
// (same id, empty message) after n.Duration.
func (d *Dispatcher) Notify(n Notification) {
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}
	if !d.quiet {
		log.Printf("[%s] %s", n.Severity, n.Message)
	}
	d.fanOut(n)
	id := n.ID
	time.AfterFunc(n.Duration, func() {
		d.fanOut(Notification{ID: id})
	})
}

// Subscribe returns a channel of notification events (including dismissals)
// and a cancel func.
func (d *Dispatcher) Subscribe() (<-chan Notification, func()) {
	d.mu.Lock()
	id := d.nextSub
	d.nextSub++
	ch := make(chan Notification, 16)
	d.subs[id] = ch
	d.mu.Unlock()

	cancel := func() {
		d.mu.Lock()
		if c, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(c)
		}
		d.mu.Unlock()
	}
	return ch, cancel
}

func (d *Dispatcher) fanOut(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, ch := range d.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
