package massenger

import (
	"context"

	"github.com/golang/glog"
)

// Handler is called when a frame is received. Arguments are read from m.
type Handler interface {
	HandleMessage(ctx context.Context, m *Massenger)
}

// HandleMessageFunc is func type of Handler.
type HandleMessageFunc func(context.Context, *Massenger)

// HandleMessage implements Handler.
func (f HandleMessageFunc) HandleMessage(ctx context.Context, m *Massenger) {
	f(ctx, m)
}

// Router dispatches frames by address. Binary frames with arguments are
// only routed when the sender terminates the address with a NUL, see
// Config.TerminateAddress.
type Router struct {
	// Fallback handles frames no route matches.
	Fallback Handler

	routes map[string]Handler
}

// Handle registers h for address.
func (r *Router) Handle(address string, h Handler) *Router {
	if r.routes == nil {
		r.routes = make(map[string]Handler)
	}
	r.routes[address] = h
	return r
}

// HandleFunc registers fn for address.
func (r *Router) HandleFunc(address string, fn func(context.Context, *Massenger)) *Router {
	return r.Handle(address, HandleMessageFunc(fn))
}

// HandleMessage implements Handler.
func (r *Router) HandleMessage(ctx context.Context, m *Massenger) {
	r.Route(ctx, m)
}

// Route dispatches the current frame of m and reports whether a route
// or the fallback handled it.
func (r *Router) Route(ctx context.Context, m *Massenger) bool {
	address := m.Address()
	if h, ok := r.routes[address]; ok {
		return m.Dispatch(address, func() { h.HandleMessage(ctx, m) })
	}
	if r.Fallback != nil {
		r.Fallback.HandleMessage(ctx, m)
		return true
	}
	glog.V(2).Infof("no route for %q", address)
	return false
}
