package depot

import (
	"reflect"
	"slices"
	"weak"
)

// Dispatcher is a deferred publish/subscribe bus over a closed set of event types.
//
// Connect, Disconnect and Push do not act immediately. They queue an action and
// Dispatch runs the queue in submission order, so handlers may connect, disconnect
// and push from inside OnEvent without disturbing the list being invoked.
type Dispatcher struct {
	pending     []func(*Dispatcher)
	spare       []func(*Dispatcher)
	adapters    map[reflect.Type]any
	dispatching bool
}

func newDispatcher() *Dispatcher {
	return &Dispatcher{
		adapters: make(map[reflect.Type]any),
	}
}

// RegisterEvent adds E to the event types the dispatcher routes. Registering twice is a no-op.
func RegisterEvent[E any](d *Dispatcher) {
	t := reflect.TypeFor[E]()
	if _, ok := d.adapters[t]; ok {
		return
	}
	d.adapters[t] = &Adapter[E]{}
}

// AdapterFor returns the subscriber list for E and panics with UnknownEventError
// if E was never registered.
func AdapterFor[E any](d *Dispatcher) *Adapter[E] {
	t := reflect.TypeFor[E]()
	adapter, ok := d.adapters[t]
	if !ok {
		panic(UnknownEventError{Type: t})
	}
	return adapter.(*Adapter[E])
}

// Connect queues a subscription of handler to E. fn is called with the handler for
// each event; it must not capture handler itself or the handler is never collected.
// Method expressions such as (*Receiver).OnHit fit.
func Connect[E, H any](d *Dispatcher, handler *H, fn func(*H, E)) {
	AdapterFor[E](d)
	s := newSubscriber(weak.Make(handler), fn)
	d.enqueue(func(d *Dispatcher) {
		AdapterFor[E](d).connect(s)
	})
}

// Disconnect queues removal of the first subscription of handler to E
func Disconnect[E, H any](d *Dispatcher, handler *H) {
	AdapterFor[E](d)
	owner := weak.Make(handler)
	d.enqueue(func(d *Dispatcher) {
		AdapterFor[E](d).disconnect(owner)
	})
}

// Push queues event for delivery to the subscribers of E current when it is dispatched
func Push[E any](d *Dispatcher, event E) {
	AdapterFor[E](d)
	d.enqueue(func(d *Dispatcher) {
		AdapterFor[E](d).invoke(event)
	})
}

func (d *Dispatcher) enqueue(action func(*Dispatcher)) {
	d.pending = append(d.pending, action)
}

// Dispatch runs queued actions in FIFO order until the queue is empty, including
// actions queued by handlers along the way. Calling Dispatch from a handler is a
// no-op because the outer call keeps draining. If a handler panics, the actions
// after it stay queued.
func (d *Dispatcher) Dispatch() {
	if d.dispatching {
		return
	}
	d.dispatching = true
	defer func() { d.dispatching = false }()

	for len(d.pending) > 0 {
		batch := d.pending
		d.pending = d.spare[:0]
		d.run(batch)
		d.spare = batch[:0]
	}
}

func (d *Dispatcher) run(batch []func(*Dispatcher)) {
	next := 0
	defer func() {
		if next < len(batch) {
			d.pending = slices.Concat(batch[next:], d.pending)
			d.spare = nil
		}
	}()
	for next < len(batch) {
		action := batch[next]
		batch[next] = nil
		next++
		action(d)
	}
}

// Pending returns the number of queued actions
func (d *Dispatcher) Pending() int {
	return len(d.pending)
}
