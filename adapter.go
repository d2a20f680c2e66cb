package depot

import (
	"reflect"
	"weak"

	"go.uber.org/zap"
)

// Adapter is the ordered subscriber list for one event type.
//
// Subscribers are held weakly: a handler that has been garbage collected is
// skipped and pruned, never invoked.
type Adapter[E any] struct {
	subscribers []subscriber[E]
}

type subscriber[E any] struct {
	// owner is the weak.Pointer to the handler, compared for disconnects
	owner   any
	deliver func(E) bool
}

func newSubscriber[E, H any](handler weak.Pointer[H], fn func(*H, E)) subscriber[E] {
	return subscriber[E]{
		owner: handler,
		deliver: func(event E) bool {
			h := handler.Value()
			if h == nil {
				return false
			}
			fn(h, event)
			return true
		},
	}
}

func (a *Adapter[E]) connect(s subscriber[E]) {
	a.subscribers = append(a.subscribers, s)
}

// disconnect removes the first subscription owned by the handler
func (a *Adapter[E]) disconnect(owner any) {
	for i, s := range a.subscribers {
		if s.owner == owner {
			a.subscribers = append(a.subscribers[:i], a.subscribers[i+1:]...)
			return
		}
	}
}

// invoke delivers event to every live subscriber in order. The list is only
// rewritten after the last delivery, so a panicking handler leaves it intact.
func (a *Adapter[E]) invoke(event E) {
	var live []subscriber[E]
	for i, s := range a.subscribers {
		if s.deliver(event) {
			if live != nil {
				live = append(live, s)
			}
			continue
		}
		if live == nil {
			live = make([]subscriber[E], i, len(a.subscribers))
			copy(live, a.subscribers[:i])
		}
	}
	if live == nil {
		return
	}
	Config.logger.Debug("pruned collected event handlers",
		zap.Stringer("event", reflect.TypeFor[E]()),
		zap.Int("pruned", len(a.subscribers)-len(live)),
	)
	a.subscribers = live
}

// Len returns the number of subscriptions, including ones whose handler has not been pruned yet
func (a *Adapter[E]) Len() int {
	return len(a.subscribers)
}
