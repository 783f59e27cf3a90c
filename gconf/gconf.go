package gconf

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// ReadStore is the part of weave.ReadOnlyKVStore needed to load a
// configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of weave.KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is implemented by the configuration entity of an
// extension. Marshal and Unmarshal come with every protobuf message.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// confKey is the single database key holding the configuration of pkg.
func confKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	return db.Set(confKey(pkg), raw)
}

// Load reads the configuration of pkg into dst. It fails with ErrNotFound
// if nothing was saved yet.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(confKey(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(err, "read %s configuration", pkg)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "unmarshal %s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig reads the genesis section conf.<pkg> into conf and saves it.
// A genesis without that section fails with ErrNotFound, which callers
// with an optional configuration can ignore.
func InitConfig(db Store, opts weave.Options, pkg string, conf Configuration) error {
	var all weave.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read %s configuration", pkg)
	}
	return Save(db, pkg, conf)
}
