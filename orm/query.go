package orm

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// ConsumeIterator collects the remaining entries of it and closes it.
func ConsumeIterator(it weave.Iterator) ([]weave.Model, error) {
	defer it.Close()

	var res []weave.Model
	for it.Valid() {
		res = append(res, weave.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// queryMod answers a key or a prefix query for the full database key.
// A missing key is an empty result.
func queryMod(db weave.ReadOnlyKVStore, mod string, key []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []weave.Model{weave.Pair(key, value)}, nil
	case weave.PrefixQueryMod:
		it, err := db.Iterator(key, prefixRangeEnd(key))
		if err != nil {
			return nil, err
		}
		return ConsumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// prefixRangeEnd is the exclusive end of the range of keys starting with
// prefix. It is nil, an open end, for an empty or all 0xFF prefix.
func prefixRangeEnd(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xFF {
			end := append([]byte(nil), prefix[:i+1]...)
			end[i]++
			return end
		}
	}
	return nil
}

// RegisterQuery serves the raw store under "/". Query data is the full
// database key, bucket prefix included.
func RegisterQuery(qr weave.QueryRouter) {
	qr.Register("/", rawQueryHandler{})
}

type rawQueryHandler struct{}

func (rawQueryHandler) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	return queryMod(db, mod, data)
}
