// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/vechain/tokencore/kv"
)

const defaultCacheSize = 4096

var storageKeyPrefix = []byte("s")

// Stater is the state creator.
type Stater struct {
	db    kv.GetPutter
	cache *lru.Cache // committed raw values
}

// NewStater create a new stater.
func NewStater(db kv.GetPutter) *Stater {
	cache, _ := lru.New(defaultCacheSize)
	return &Stater{db, cache}
}

// NewState create a new state object on top of the committed storage.
func (s *Stater) NewState() *State {
	return newState(s)
}

func (k storageKey) dbKey() []byte {
	key := make([]byte, 0, len(storageKeyPrefix)+len(k.addr)+len(k.key))
	key = append(key, storageKeyPrefix...)
	key = append(key, k.addr[:]...)
	return append(key, k.key[:]...)
}

func (s *Stater) load(key storageKey) ([]byte, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.([]byte), nil
	}
	v, err := s.db.Get(key.dbKey())
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, errors.Wrap(err, "load storage")
		}
		v = nil
	}
	s.cache.Add(key, v)
	return v, nil
}
