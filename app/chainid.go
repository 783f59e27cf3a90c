package app

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// Keys with the _td: prefix hold application internal data. No extension
// bucket can produce them as bucket names are lower case letters only.
var chainIDKey = []byte("_td:chain_id")

// loadChainID returns the stored chain id or an empty string before
// genesis.
func loadChainID(db weave.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID stores the chain id. It can be written only once.
func saveChainID(db weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	switch exists, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrImmutable, "chain id is set at genesis")
	}
	if err := db.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
