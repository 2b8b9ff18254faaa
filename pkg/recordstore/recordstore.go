// Package recordstore stores domain records in a bbolt database.
//
// Records are grouped by kind. Each kind has its own bucket, keyed by a
// positive integer ID in big-endian order, and values are encoded as JSON.
package recordstore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/linkki-framework/linkki-sub003/pkg/logutil"
)

var logger = logutil.GetLogger("[recordstore] ")

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is a database of records.
type Store struct {
	db *bolt.DB
}

// Open opens the database at path, creating it if needed. It fails if the
// database is locked by another process for more than a second.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open record store %s: %w", path, err)
	}
	logger.Println("opened", path)
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// NextID returns the ID that the next Add of the kind will use.
func (s *Store) NextID(kind string) (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(kind)); b != nil {
			seq = b.Sequence()
		}
		return nil
	})
	return int(seq + 1), err
}

// Add stores v as a new record of the kind and returns its ID.
func (s *Store) Add(kind string, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	var seq uint64
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(kind))
		if err != nil {
			return err
		}
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalID(seq), data)
	})
	return int(seq), err
}

// Put stores v as the record of the kind with the given ID, replacing any
// existing record. IDs used by Put are never returned by Add.
func (s *Store) Put(kind string, id int, v any) error {
	if id <= 0 {
		return fmt.Errorf("invalid record ID %d", id)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(kind))
		if err != nil {
			return err
		}
		if uint64(id) > b.Sequence() {
			if err := b.SetSequence(uint64(id)); err != nil {
				return err
			}
		}
		return b.Put(marshalID(uint64(id)), data)
	})
}

// Get decodes the record of the kind with the given ID into v.
func (s *Store) Get(kind string, id int, v any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(kind))
		if b == nil {
			return ErrNotFound
		}
		data := b.Get(marshalID(uint64(id)))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, v)
	})
}

// IDs returns the IDs of all records of the kind in ascending order.
func (s *Store) IDs(kind string) ([]int, error) {
	var ids []int
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(kind))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			ids = append(ids, int(unmarshalID(k)))
			return nil
		})
	})
	return ids, err
}

// Delete deletes the record of the kind with the given ID.
func (s *Store) Delete(kind string, id int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(kind))
		if b == nil || b.Get(marshalID(uint64(id))) == nil {
			return ErrNotFound
		}
		return b.Delete(marshalID(uint64(id)))
	})
}

func marshalID(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

func unmarshalID(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
