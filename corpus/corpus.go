// Package corpus persists named MessagePack fixtures in a small embedded
// key-value store, for use as a growing regression corpus of encode/decode
// boundary cases. It is independent of package msgpack's own tests so those
// tests can import it without a dependency cycle; it happens to use the
// msgpack codec itself to serialize its records.
package corpus

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"

	"github.com/cespare/xxhash/v2"

	"github.com/nanopack/msgpack"
)

var (
	fixturesBucket    = []byte("fixtures")
	fingerprintBucket = []byte("fingerprints")
)

// Fixture is one named regression case: an encoded MessagePack value plus a
// human-readable description of what it is exercising.
type Fixture struct {
	Name        string
	Description string
	Encoded     []byte
	Fingerprint uint64
}

// Options configures Open. The zero value logs at slog.Default().
type Options struct {
	Logger *slog.Logger
}

// Store is a bbolt-backed collection of Fixtures, keyed by name, with a
// secondary index from content fingerprint to name for Dedup.
type Store struct {
	bdb    *bbolt.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) a corpus store at path.
func Open(path string, opts ...Options) (*Store, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	bdb, err := bbolt.Open(path, 0o666, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(fixturesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(fingerprintBucket)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("corpus: init buckets: %w", err)
	}

	return &Store{bdb: bdb, logger: o.Logger}, nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.bdb.Close()
}

// Put stores a fixture under name, overwriting any existing fixture of the
// same name, and indexes it by its xxhash.Sum64 fingerprint for Dedup.
func (s *Store) Put(name, description string, encoded []byte) error {
	fp := xxhash.Sum64(encoded)
	rec := encodeFixtureRecord(description, encoded, fp)

	err := s.bdb.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(fixturesBucket).Put([]byte(name), rec); err != nil {
			return err
		}
		return tx.Bucket(fingerprintBucket).Put(fingerprintKey(fp), []byte(name))
	})
	if err != nil {
		return fmt.Errorf("corpus: put %q: %w", name, err)
	}

	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "corpus: fixture stored",
		slog.String("name", name), slog.Int("bytes", len(encoded)), slog.Uint64("fingerprint", fp))
	return nil
}

// Get returns the fixture stored under name, or ok=false if none exists.
func (s *Store) Get(name string) (Fixture, bool, error) {
	var f Fixture
	var found bool
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		rec := tx.Bucket(fixturesBucket).Get([]byte(name))
		if rec == nil {
			return nil
		}
		decoded, err := decodeFixtureRecord(name, rec)
		if err != nil {
			return err
		}
		f, found = decoded, true
		return nil
	})
	if err != nil {
		return Fixture{}, false, fmt.Errorf("corpus: get %q: %w", name, err)
	}
	if found {
		s.logger.LogAttrs(context.Background(), slog.LevelDebug, "corpus: fixture found", slog.String("name", name))
	}
	return f, found, nil
}

// All returns every stored fixture, in key (name) order.
func (s *Store) All() ([]Fixture, error) {
	var out []Fixture
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(fixturesBucket).ForEach(func(k, v []byte) error {
			f, err := decodeFixtureRecord(string(k), v)
			if err != nil {
				return err
			}
			out = append(out, f)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: list all: %w", err)
	}
	return out, nil
}

// Dedup looks up an existing fixture with the same content fingerprint as
// encoded, so callers can avoid storing byte-for-byte duplicate regression
// cases under different names.
func (s *Store) Dedup(encoded []byte) (name string, found bool, err error) {
	fp := xxhash.Sum64(encoded)
	err = s.bdb.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(fingerprintBucket).Get(fingerprintKey(fp))
		if v == nil {
			return nil
		}
		name, found = string(v), true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("corpus: dedup: %w", err)
	}
	return name, found, nil
}

func fingerprintKey(fp uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], fp)
	return b[:]
}

// encodeFixtureRecord serializes a fixture's description, payload, and
// fingerprint as a MessagePack map, using package msgpack's own codec so the
// corpus format is exercised by the same encoder it is regression-testing.
func encodeFixtureRecord(description string, encoded []byte, fp uint64) []byte {
	v := msgpack.FromMap([]msgpack.MapEntry{
		{Key: msgpack.FromString("description"), Value: msgpack.FromString(description)},
		{Key: msgpack.FromString("encoded"), Value: msgpack.FromBin(encoded)},
		{Key: msgpack.FromString("fingerprint"), Value: msgpack.FromUint(fp)},
	})
	return msgpack.Pack(v)
}

func decodeFixtureRecord(name string, rec []byte) (Fixture, error) {
	v, err := msgpack.Unpack(rec)
	if err != nil {
		return Fixture{}, fmt.Errorf("corrupt fixture record for %q: %w", name, err)
	}
	return Fixture{
		Name:        name,
		Description: v.Lookup("description").Str(),
		Encoded:     v.Lookup("encoded").Bin(),
		Fingerprint: v.Lookup("fingerprint").Uint(),
	}, nil
}
