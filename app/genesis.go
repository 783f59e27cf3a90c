package app

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	yaml "gopkg.in/yaml.v3"
)

// Genesis file format, designed to be overlayed with tendermint genesis
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

// LoadGenesis reads a genesis file. The format is chosen by the file
// extension: ".toml", ".yaml" and ".yml" are converted to their JSON
// equivalent, anything else is read as JSON.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrGenesis, "read %q: %s", path, err)
	}

	var tree map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), &tree); err != nil {
			return nil, errors.Wrapf(ErrGenesis, "toml: %s", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, errors.Wrapf(ErrGenesis, "yaml: %s", err)
		}
	default:
		tree = nil
	}
	if tree != nil {
		if raw, err = json.Marshal(tree); err != nil {
			return nil, errors.Wrapf(ErrGenesis, "convert to json: %s", err)
		}
	}

	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(ErrGenesis, "json: %s", err)
	}
	return &gen, nil
}

// LoadGenesis reads the genesis file and initializes the application state
// with it. It can be used instead of InitChain when the state must be
// loaded before tendermint connects.
func (s *StoreApp) LoadGenesis(path string, init weave.Initializer) error {
	gen, err := LoadGenesis(path)
	if err != nil {
		return err
	}
	return s.loadGenesis(gen.AppState, gen.ChainID, init)
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...weave.Initializer) weave.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []weave.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
