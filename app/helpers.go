package app

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore reads the committed state of an application through its Query
// method, the way a client does. The raw store must be served under "/".
// Only prefix ranges can be iterated.
type ABCIStore struct {
	app abci.Application
}

var _ weave.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

func (a *ABCIStore) query(mod string, data []byte) ([]weave.Model, error) {
	path := "/"
	if mod != weave.KeyQueryMod {
		path += "?" + mod
	}
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != abci.CodeTypeOK {
		return nil, errors.Wrapf(errors.ErrDatabase, "query %q: code %d: %s", path, res.Code, res.Log)
	}
	var keys, values ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return JoinResults(&keys, &values)
}

func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	models, err := a.query(weave.KeyQueryMod, key)
	switch {
	case err != nil:
		return nil, err
	case len(models) > 1:
		return nil, errors.Wrapf(errors.ErrState, "%d results for one key", len(models))
	case len(models) == 0:
		return nil, nil
	}
	return models[0].Value, nil
}

func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return v != nil, err
}

// Iterator returns every entry whose key starts with start. A non nil end
// is ErrHuman.
func (a *ABCIStore) Iterator(start, end []byte) (weave.Iterator, error) {
	if end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "only prefix ranges are supported")
	}
	models, err := a.query(weave.PrefixQueryMod, start)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) ReverseIterator(start, end []byte) (weave.Iterator, error) {
	if end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "only prefix ranges are supported")
	}
	models, err := a.query(weave.PrefixQueryMod, start)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}
