package weave

import (
	"fmt"
)

// Query modifiers. A query path may end with "?<mod>".
const (
	// KeyQueryMod reads the single model stored under the given key.
	KeyQueryMod = ""
	// PrefixQueryMod returns every model whose key starts with the data.
	PrefixQueryMod = "prefix"
)

// Model is a key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers queries for one path, for example "/balances".
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter maps query paths to their handlers. Extensions register
// their buckets with a RegisterQuery function.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with the router.
func (r QueryRouter) RegisterAll(registers ...func(QueryRouter)) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds h to path. Binding the same path twice panics, as it is a
// wiring mistake of the application.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
