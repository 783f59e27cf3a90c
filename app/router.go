package app

import (
	"fmt"
	"regexp"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-z0-9_]+(/[a-z0-9_]+)*$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]weave.Handler
}

var _ weave.Registry = (*Router)(nil)
var _ weave.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]weave.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for the given path is already registered or the path is not
// well formed.
func (r *Router) Handle(path string, h weave.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a notFound handler. Never returns nil.
func (r *Router) handler(path string) weave.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.handler(msg.Path()).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNoSuchPath
type notFoundHandler string

func (path notFoundHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}

func (path notFoundHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}
