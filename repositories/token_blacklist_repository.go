package repositories

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const revokedPrefix = "revoked:"

var errAlreadyRevoked = errors.New("token already revoked")

// TokenBlacklistRepository remembers revoked refresh token ids until the
// token would have expired anyway.
type TokenBlacklistRepository interface {
	RevokeOnce(jti string, ttl time.Duration) (bool, error)
	IsRevoked(jti string) (bool, error)
	Close() error
}

type tokenBlacklistRepository struct {
	db *badger.DB
}

// NewTokenBlacklistRepository opens the badger store at path. An empty path
// keeps the list in memory.
func NewTokenBlacklistRepository(path string) (TokenBlacklistRepository, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &tokenBlacklistRepository{db: db}, nil
}

// RevokeOnce marks jti as revoked and reports whether this call was the one
// that did it. The lookup and the write share a transaction, so concurrent
// callers presenting the same id see exactly one winner.
func (r *tokenBlacklistRepository) RevokeOnce(jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		// expired tokens cannot be consumed
		return false, nil
	}
	key := []byte(revokedPrefix + jti)
	err := r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return errAlreadyRevoked
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.SetEntry(badger.NewEntry(key, []byte{1}).WithTTL(ttl))
	})
	if errors.Is(err, errAlreadyRevoked) || errors.Is(err, badger.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *tokenBlacklistRepository) IsRevoked(jti string) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(revokedPrefix + jti))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *tokenBlacklistRepository) Close() error {
	return r.db.Close()
}
