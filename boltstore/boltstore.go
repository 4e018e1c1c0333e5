package boltstore

import (
	"bytes"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/funnel-project/localstore"
	"github.com/funnel-project/localstore/funnel"
)

// DefaultBucket holds stored values when no bucket name is configured.
const DefaultBucket = "localstore"

var (
	// ErrPathRequired is returned by Open when no database path is given.
	ErrPathRequired = errors.New("store path is required")

	// ErrBadRequest reports an inbound envelope the adapter cannot serve.
	ErrBadRequest = errors.New("bad storage request")
)

// Config provides configuration options for opening a Store.
type Config struct {
	// Path of the bbolt database file. Required.
	Path string

	// Bucket overrides DefaultBucket as the bucket holding stored values.
	Bucket string

	// Emit, when set, receives the startup envelope once Open finishes.
	Emit func(funnel.Envelope)
}

// Store is a bbolt-backed storage adapter.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open opens (creating if needed) the database and bucket, then announces
// readiness with a single startup envelope.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, ErrPathRequired
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}

	db, err := bolt.Open(cfg.Path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("initialize bucket %s: %w", bucket, err)
	}

	s := &Store{db: db, bucket: []byte(bucket)}
	log.WithFields(log.Fields{"path": cfg.Path, "bucket": bucket}).Debug("storage adapter ready")

	if cfg.Emit != nil {
		cfg.Emit(localstore.Encode(localstore.Startup{}))
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Handle implements funnel.Backend. Commands act on fully-namespaced keys;
// replies carry the same namespaced keys back, to be stripped upstream.
func (s *Store) Handle(env funnel.Envelope) ([]funnel.Envelope, error) {
	msg, err := localstore.Decode(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	switch m := msg.(type) {
	case localstore.Get:
		value, err := s.get(m.Key)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"key": m.Key, "found": value != nil}).Debug("storage get")
		return []funnel.Envelope{localstore.Encode(localstore.Got{
			Label: m.Label,
			Key:   m.Key,
			Value: value,
		})}, nil

	case localstore.Put:
		if err := s.put(m.Key, m.Value); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"key": m.Key, "delete": m.Value == nil}).Debug("storage put")
		return nil, nil

	case localstore.ListKeys:
		keys, err := s.listKeys(m.Prefix)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"prefix": m.Prefix, "count": len(keys)}).Debug("storage listkeys")
		return []funnel.Envelope{localstore.Encode(localstore.Keys{
			Label:  m.Label,
			Prefix: m.Prefix,
			Keys:   keys,
		})}, nil

	case localstore.Clear:
		removed, err := s.clear(m.Prefix)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"prefix": m.Prefix, "removed": removed}).Debug("storage clear")
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: tag %q is not a storage command", ErrBadRequest, env.Tag)
	}
}

func (s *Store) get(key string) (localstore.Value, error) {
	var value localstore.Value
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get([]byte(key)); v != nil {
			value = append(localstore.Value(nil), v...)
		}
		return nil
	})
	return value, err
}

func (s *Store) put(key string, value localstore.Value) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if value == nil {
			return b.Delete([]byte(key))
		}
		return b.Put([]byte(key), value)
	})
}

func (s *Store) listKeys(prefix string) ([]string, error) {
	keys := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}

func (s *Store) clear(prefix string) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		p := []byte(prefix)

		var matched [][]byte
		c := b.Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			matched = append(matched, append([]byte(nil), k...))
		}
		for _, k := range matched {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(matched)
		return nil
	})
	return removed, err
}
