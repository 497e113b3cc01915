package events

import (
	"context"
	"sync"

	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/dmancera/shopstream-backend/pkg/logger"
)

// Event is a named payload delivered to subscribers.
type Event interface {
	Name() string
}

// Subscriber handles one event delivery. A non-nil error aborts the dispatch
// and propagates to the publisher.
type Subscriber func(ctx context.Context, event Event) error

// Dispatcher delivers events synchronously, in subscription order, on the
// publisher's goroutine. Subscribers run before Publish returns, so they may
// mutate the event payload and the publisher observes the result.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers map[string][]Subscriber
	logg        *logger.Logger
}

// NewDispatcher constructs an empty dispatcher.
func NewDispatcher(logg *logger.Logger) *Dispatcher {
	return &Dispatcher{
		subscribers: map[string][]Subscriber{},
		logg:        logg,
	}
}

// Subscribe registers fn for events with the given name. Registration order
// is delivery order.
func (d *Dispatcher) Subscribe(name string, fn Subscriber) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers[name] = append(d.subscribers[name], fn)
}

// Publish delivers the event to every subscriber of its name. The first
// subscriber error stops delivery and is returned to the caller.
func (d *Dispatcher) Publish(ctx context.Context, event Event) error {
	if event == nil {
		return nil
	}
	d.mu.RLock()
	subs := d.subscribers[event.Name()]
	d.mu.RUnlock()

	for _, fn := range subs {
		if err := fn(ctx, event); err != nil {
			if d.logg != nil {
				d.logg.Warn(d.logg.WithFields(ctx, map[string]any{
					"event": event.Name(),
					"error": err.Error(),
				}), "event subscriber failed")
			}
			if appErr := pkgerrors.As(err); appErr != nil {
				return appErr
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "event subscriber failed")
		}
	}
	return nil
}
