package app

import (
	"reflect"

	weave "github.com/iov-one/tokendrop"
)

// Decorators is an ordered list of decorators waiting for the handler they
// wrap. The first decorator is the outermost one.
type Decorators struct {
	chain []weave.Decorator
}

/*
ChainDecorators builds a decorator list. Nil entries are skipped, so
optional decorators can be passed unconditionally:

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    metrics, // may be nil
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(router)
*/
func ChainDecorators(chain ...weave.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new list with the given decorators appended. The
// receiver is never modified.
func (d Decorators) Chain(chain ...weave.Decorator) Decorators {
	all := make([]weave.Decorator, 0, len(d.chain)+len(chain))
	all = append(all, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			all = append(all, dec)
		}
	}
	return Decorators{chain: all}
}

// isNilDecorator is true for a nil interface and for a typed nil pointer.
func isNilDecorator(d weave.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the list into a single Handler. A transaction
// passes every decorator in order before it reaches h.
func (d Decorators) WithHandler(h weave.Handler) weave.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = link{dec: d.chain[i], next: h}
	}
	return h
}

// link binds a decorator to the handler it wraps.
type link struct {
	dec  weave.Decorator
	next weave.Handler
}

var _ weave.Handler = link{}

func (l link) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
