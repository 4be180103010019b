// Package cache persists completed analysis reports on disk, keyed by
// a digest of the input text. Re-analyzing an unchanged candl output
// replays the stored report without re-running the pipeline.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound is returned when no entry exists for a digest.
var ErrNotFound = errors.New("cache entry not found")

// Entry is one stored analysis result.
type Entry struct {
	Digest    string    `msgpack:"digest"`
	CreatedAt time.Time `msgpack:"created_at"`
	Vars      []string  `msgpack:"vars"`   // variables in section order
	Output    string    `msgpack:"output"` // rendered report text
}

// Store is a directory-backed cache with one msgpack file per digest.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) a cache directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Digest returns the cache key for an input text.
func Digest(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// Get loads the entry for a digest. Returns ErrNotFound when absent; a
// corrupt entry is treated as absent after being removed.
func (s *Store) Get(digest string) (*Entry, error) {
	data, err := os.ReadFile(s.path(digest))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		os.Remove(s.path(digest))
		return nil, ErrNotFound
	}
	if entry.Digest != digest {
		return nil, ErrNotFound
	}
	return &entry, nil
}

// Put stores an entry under its digest, replacing any previous one.
func (s *Store) Put(entry *Entry) error {
	if entry.Digest == "" {
		return errors.New("cache entry has no digest")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	data, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	tmp := s.path(entry.Digest) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return os.Rename(tmp, s.path(entry.Digest))
}

// Save encodes one entry to a writer; Load is its inverse. They exist
// so callers can move entries across stores or inspect them offline.
func Save(w io.Writer, entry *Entry) error {
	return msgpack.NewEncoder(w).Encode(entry)
}

// Load decodes one entry from a reader.
func Load(r io.Reader) (*Entry, error) {
	var entry Entry
	if err := msgpack.NewDecoder(r).Decode(&entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}
	return &entry, nil
}

// Clear removes every entry in the store.
func (s *Store) Clear() error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.bin"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Len counts stored entries.
func (s *Store) Len() int {
	matches, _ := filepath.Glob(filepath.Join(s.dir, "*.bin"))
	return len(matches)
}

func (s *Store) path(digest string) string {
	return filepath.Join(s.dir, digest+".bin")
}
