package session

import (
	"duochat/domain"
	"duochat/errors"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Keys under which the session lives in BadgerDB. One store holds exactly
// one session; logout clears both entries.
const (
	keyToken = "session:token"
	keyUser  = "session:user"
)

// Store persists the authenticated session across restarts. Binaries write
// it at login; the engine side only ever reads it.
type Store struct {
	db  *badger.DB
	log *slog.Logger
}

func Open(path string, log *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store at %s: %w", path, err)
	}
	return &Store{db: db, log: log}, nil
}

// OpenInMemory backs the store with a throwaway in-memory database,
// used by tests and by ephemeral sessions.
func OpenInMemory(log *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) SaveToken(token string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyToken), []byte(token))
	})
}

func (s *Store) LoadToken() (string, error) {
	raw, err := s.get(keyToken)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Store) SaveUser(p domain.Participant) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyUser), raw)
	})
}

func (s *Store) LoadUser() (domain.Participant, error) {
	raw, err := s.get(keyUser)
	if err != nil {
		return domain.Participant{}, err
	}
	var p domain.Participant
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Participant{}, err
	}
	return p, nil
}

// Clear wipes the session on logout.
func (s *Store) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyToken)); err != nil {
			return err
		}
		return txn.Delete([]byte(keyUser))
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) ([]byte, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.ErrNoSession
	}
	return raw, err
}
