// Package store persists exploration results in BadgerDB so a scan of the
// seed space can be reported on, or queried seed by seed, without being
// recomputed.
//
// Layout:
//
//	meta/fingerprint     table fingerprint the result was computed with
//	seed/<3 bytes>       steps (u32) | loop id (u32) | entry index (u32)
//	loop/<4 bytes id>    member states, u32 each, in insertion order
//
// All integers are big-endian so keys sort by seed and loop id.
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/opd-ai/go-piecerng"
)

var (
	prefixMeta = []byte("meta/")
	prefixSeed = []byte("seed/")
	prefixLoop = []byte("loop/")

	keyFingerprint = []byte("meta/fingerprint")
)

var (
	// ErrNoResult is returned when the store holds no exploration result.
	ErrNoResult = errors.New("store: no exploration result")

	// ErrFingerprintMismatch is returned when a stored result was computed
	// with a different repeat table.
	ErrFingerprintMismatch = errors.New("store: table fingerprint mismatch")

	// ErrCorruptRecord is returned for values of the wrong size.
	ErrCorruptRecord = errors.New("store: corrupt record")
)

const seedRecordSize = 12

// Config holds configuration for a result store.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger is the logger for BadgerDB operations.
	// If nil, BadgerDB's internal logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns a persistent configuration for path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns configuration optimized for testing.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store is a BadgerDB-backed exploration result store.
// It is safe for concurrent use.
type Store struct {
	db       *badger.DB
	path     string
	inMemory bool
}

// Open opens or creates a store.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store: path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("store: create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger database: %w", err)
	}
	return &Store{db: db, path: cfg.Path, inMemory: cfg.InMemory}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path, or empty string for in-memory stores.
func (s *Store) Path() string {
	if s.inMemory {
		return ""
	}
	return s.path
}

// withReadTxn executes fn within a read-only transaction.
func (s *Store) withReadTxn(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	txn := s.db.NewTransaction(false)
	defer txn.Discard()
	return fn(txn)
}

// SaveResult replaces any stored result with r, computed with the table
// whose fingerprint is fp.
func (s *Store) SaveResult(ctx context.Context, fp [32]byte, r *piecerng.Result) error {
	if err := s.clear(ctx); err != nil {
		return fmt.Errorf("store: clear previous result: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	n := 0
	for seed, sr := range r.Seeds {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := wb.Set(seedKey(seed), encodeSeedResult(sr)); err != nil {
			return fmt.Errorf("store: write seed %s: %w", seed, err)
		}
		n++
	}
	for id, l := range r.Loops {
		if err := wb.Set(loopKey(id), encodeLoop(l)); err != nil {
			return fmt.Errorf("store: write loop %s: %w", id, err)
		}
	}
	// Written last: a store without a fingerprint holds no complete result.
	if err := wb.Set(keyFingerprint, fp[:]); err != nil {
		return fmt.Errorf("store: write fingerprint: %w", err)
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("store: flush: %w", err)
	}
	return nil
}

// clear deletes every key of a previous result.
func (s *Store) clear(ctx context.Context) error {
	var keys [][]byte
	err := s.withReadTxn(ctx, func(txn *badger.Txn) error {
		for _, prefix := range [][]byte{prefixMeta, prefixSeed, prefixLoop} {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			opts.PrefetchValues = false
			it := txn.NewIterator(opts)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
			it.Close()
		}
		return nil
	})
	if err != nil || len(keys) == 0 {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Fingerprint returns the table fingerprint of the stored result.
func (s *Store) Fingerprint(ctx context.Context) ([32]byte, error) {
	var fp [32]byte
	err := s.withReadTxn(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get(keyFingerprint)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoResult
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			if len(v) != len(fp) {
				return fmt.Errorf("%w: fingerprint is %d bytes", ErrCorruptRecord, len(v))
			}
			copy(fp[:], v)
			return nil
		})
	})
	return fp, err
}

// LoadResult reads the stored result back. It fails with
// ErrFingerprintMismatch if the result was computed with another table.
func (s *Store) LoadResult(ctx context.Context, fp [32]byte) (*piecerng.Result, error) {
	stored, err := s.Fingerprint(ctx)
	if err != nil {
		return nil, err
	}
	if stored != fp {
		return nil, fmt.Errorf("%w: stored %x, table %x", ErrFingerprintMismatch, stored[:8], fp[:8])
	}

	r := &piecerng.Result{
		Seeds: make(map[piecerng.Seed]piecerng.SeedResult),
		Loops: make(map[piecerng.CanonicalState]*piecerng.Loop),
	}
	err = s.withReadTxn(ctx, func(txn *badger.Txn) error {
		if err := scanPrefix(txn, prefixSeed, func(key, val []byte) error {
			seed, err := parseSeedKey(key)
			if err != nil {
				return err
			}
			sr, err := decodeSeedResult(val)
			if err != nil {
				return fmt.Errorf("seed %s: %w", seed, err)
			}
			r.Seeds[seed] = sr
			return nil
		}); err != nil {
			return err
		}
		return scanPrefix(txn, prefixLoop, func(key, val []byte) error {
			l, err := decodeLoop(val)
			if err != nil {
				return err
			}
			r.Loops[l.ID()] = l
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("store: load result: %w", err)
	}
	return r, nil
}

// LookupSeed returns the stored classification of one seed.
func (s *Store) LookupSeed(ctx context.Context, seed piecerng.Seed) (piecerng.SeedResult, bool, error) {
	var (
		sr    piecerng.SeedResult
		found bool
	)
	err := s.withReadTxn(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get(seedKey(seed.Canonical()))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			sr, err = decodeSeedResult(v)
			found = err == nil
			return err
		})
	})
	return sr, found, err
}

// Loop returns one stored loop.
func (s *Store) Loop(ctx context.Context, id piecerng.CanonicalState) (*piecerng.Loop, error) {
	var l *piecerng.Loop
	err := s.withReadTxn(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get(loopKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			l, err = decodeLoop(v)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("store: loop %s: %w", id, err)
	}
	return l, nil
}

func scanPrefix(txn *badger.Txn, prefix []byte, fn func(key, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		key := item.KeyCopy(nil)
		if err := item.Value(func(v []byte) error { return fn(key, v) }); err != nil {
			return err
		}
	}
	return nil
}

func seedKey(seed piecerng.Seed) []byte {
	s1, s2, s3 := seed.Bytes()
	return append(append([]byte(nil), prefixSeed...), s1, s2, s3)
}

func parseSeedKey(key []byte) (piecerng.Seed, error) {
	if len(key) != len(prefixSeed)+3 {
		return 0, fmt.Errorf("%w: seed key %q", ErrCorruptRecord, key)
	}
	b := key[len(prefixSeed):]
	return piecerng.NewSeed(b[0], b[1], b[2]), nil
}

func loopKey(id piecerng.CanonicalState) []byte {
	return binary.BigEndian.AppendUint32(append([]byte(nil), prefixLoop...), uint32(id))
}

func encodeSeedResult(sr piecerng.SeedResult) []byte {
	buf := make([]byte, 0, seedRecordSize)
	buf = binary.BigEndian.AppendUint32(buf, sr.StepsToCycle)
	buf = binary.BigEndian.AppendUint32(buf, uint32(sr.LoopID))
	buf = binary.BigEndian.AppendUint32(buf, sr.EntryIndex)
	return buf
}

func decodeSeedResult(v []byte) (piecerng.SeedResult, error) {
	if len(v) != seedRecordSize {
		return piecerng.SeedResult{}, fmt.Errorf("%w: seed record is %d bytes", ErrCorruptRecord, len(v))
	}
	return piecerng.SeedResult{
		StepsToCycle: binary.BigEndian.Uint32(v[0:4]),
		LoopID:       piecerng.CanonicalState(binary.BigEndian.Uint32(v[4:8])),
		EntryIndex:   binary.BigEndian.Uint32(v[8:12]),
	}, nil
}

func encodeLoop(l *piecerng.Loop) []byte {
	buf := make([]byte, 0, 4*l.Len())
	for _, s := range l.States() {
		buf = binary.BigEndian.AppendUint32(buf, uint32(s))
	}
	return buf
}

func decodeLoop(v []byte) (*piecerng.Loop, error) {
	if len(v) == 0 || len(v)%4 != 0 {
		return nil, fmt.Errorf("%w: loop record is %d bytes", ErrCorruptRecord, len(v))
	}
	states := make([]piecerng.CanonicalState, len(v)/4)
	for i := range states {
		states[i] = piecerng.CanonicalState(binary.BigEndian.Uint32(v[i*4:]))
	}
	return piecerng.NewLoop(states), nil
}
