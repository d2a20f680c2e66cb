package depot

import "weak"

// Connection is a revocable subscription of one handler to one event type.
//
// It keeps neither the dispatcher nor the handler alive. Once either has been
// collected, Connect and Disconnect do nothing. The zero value is an empty
// connection, which is convenient as a struct field filled in after construction.
type Connection[E, H any] struct {
	dispatcher weak.Pointer[Dispatcher]
	handler    weak.Pointer[H]
	fn         func(*H, E)
}

func NewConnection[E, H any](d *Dispatcher, handler *H, fn func(*H, E)) Connection[E, H] {
	AdapterFor[E](d)
	return Connection[E, H]{
		dispatcher: weak.Make(d),
		handler:    weak.Make(handler),
		fn:         fn,
	}
}

func (c Connection[E, H]) Connect() {
	d, h := c.dispatcher.Value(), c.handler.Value()
	if d == nil || h == nil {
		return
	}
	Connect(d, h, c.fn)
}

func (c Connection[E, H]) Disconnect() {
	d, h := c.dispatcher.Value(), c.handler.Value()
	if d == nil || h == nil {
		return
	}
	Disconnect[E](d, h)
}
