package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/ezrec/critter/creature"
	"github.com/ezrec/critter/world"
)

// Store is a LevelDB database of population snapshots.
// It is safe for concurrent use.
type Store struct {
	Verbose bool // If set, enables verbose logging.

	db *leveldb.DB
}

// Open opens or creates a store at path. An empty path opens an in-memory
// store.
func Open(path string) (st *Store, err error) {
	var db *leveldb.DB
	if path == "" {
		db, err = leveldb.Open(leveldbstorage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return
	}

	st = &Store{db: db}

	return
}

// Close the store.
func (st *Store) Close() error {
	return st.db.Close()
}

func tickPrefix(tick uint64) []byte {
	return []byte(fmt.Sprintf("tick/%020d/", tick))
}

func creatureKey(tick uint64, id world.Id) []byte {
	return []byte(fmt.Sprintf("tick/%020d/creature/%010d", tick, id))
}

// parseTick returns the tick of a creature key.
func parseTick(key string) (tick uint64, err error) {
	parts := strings.Split(key, "/")
	if len(parts) != 4 || parts[0] != "tick" || parts[2] != "creature" {
		err = &ErrKey{Key: key, Err: ErrKeyInvalid}
		return
	}

	tick, err = strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		err = &ErrKey{Key: key, Err: errors.Join(ErrKeyInvalid, err)}
		return
	}

	return
}

// SaveTick stores the snapshots of a tick, replacing any already stored.
func (st *Store) SaveTick(tick uint64, snaps []creature.Snapshot) (err error) {
	batch := new(leveldb.Batch)

	iter := st.db.NewIterator(util.BytesPrefix(tickPrefix(tick)), nil)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	err = iter.Error()
	if err != nil {
		return
	}

	for _, snap := range snaps {
		var data []byte
		data, err = json.Marshal(&snap)
		if err != nil {
			return
		}
		batch.Put(creatureKey(tick, snap.Id), data)
	}

	err = st.db.Write(batch, nil)
	if err != nil {
		return
	}

	if st.Verbose {
		log.Printf("store: tick %d, %d creatures", tick, len(snaps))
	}

	return
}

// LoadTick returns the snapshots of a tick, in creature id order.
func (st *Store) LoadTick(tick uint64) (snaps []creature.Snapshot, err error) {
	iter := st.db.NewIterator(util.BytesPrefix(tickPrefix(tick)), nil)
	defer iter.Release()

	found := false
	for iter.Next() {
		found = true

		var snap creature.Snapshot
		err = json.Unmarshal(iter.Value(), &snap)
		if err != nil {
			err = &ErrKey{Key: string(iter.Key()), Err: err}
			return
		}
		snaps = append(snaps, snap)
	}

	err = iter.Error()
	if err != nil {
		return
	}

	if !found {
		err = ErrTickMissing
	}

	return
}

// Ticks returns the stored ticks, in ascending order.
func (st *Store) Ticks() (ticks []uint64, err error) {
	iter := st.db.NewIterator(util.BytesPrefix([]byte("tick/")), nil)
	defer iter.Release()

	for iter.Next() {
		key := string(iter.Key())

		var tick uint64
		tick, err = parseTick(key)
		if err != nil {
			return
		}

		if len(ticks) == 0 || ticks[len(ticks)-1] != tick {
			ticks = append(ticks, tick)
		}
	}

	err = iter.Error()

	return
}

// DeleteTick removes the snapshots of a tick.
func (st *Store) DeleteTick(tick uint64) (err error) {
	return st.SaveTick(tick, nil)
}
