package app

import (
	"sync"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// CommitStore keeps the committed state together with the two caches that
// are written between commits, one for DeliverTx and one for CheckTx. Only
// the deliver cache is ever persisted.
type CommitStore struct {
	mu        sync.Mutex
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

// NewCommitStore loads the latest version of the given store and sets up
// the deliver and check caches on top of it.
func NewCommitStore(db weave.CommitKVStore) (*CommitStore, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cs := &CommitStore{committed: db}
	cs.resetCaches()
	return cs, nil
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (weave.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit flushes the deliver cache into the committed store and persists
// it. Pending CheckTx writes are dropped, so the next block is checked
// against the new state.
func (cs *CommitStore) Commit() (weave.CommitID, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.deliver.Write(); err != nil {
		return weave.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.resetCaches()
	return id, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() weave.CacheableKVStore {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() weave.CacheableKVStore {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.deliver
}
