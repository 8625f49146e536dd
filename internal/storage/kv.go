package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetInt returns the integer stored under namespace/key. ok is false when
// the key has never been written.
func (s *Store) GetInt(namespace, key string) (value int, ok bool, err error) {
	err = s.db.QueryRow(
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// SetInt stores value under namespace/key, replacing any previous value.
func (s *Store) SetInt(namespace, key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s/%s: %w", namespace, key, err)
	}
	return nil
}

// RaiseInt stores value under namespace/key unless a larger value is already
// there, and returns the stored value. The comparison happens inside SQLite,
// so concurrent writers never lower it.
func (s *Store) RaiseInt(namespace, key string, value int) (int, error) {
	var stored int
	err := s.db.QueryRow(
		`INSERT INTO kv (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = MAX(value, excluded.value), updated_at = CURRENT_TIMESTAMP
		 RETURNING value`,
		namespace, key, value,
	).Scan(&stored)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot raise %s/%s: %w", namespace, key, err)
	}
	return stored, nil
}

// BestScore keeps a game's best score in the key-value table. It satisfies
// flappy.BestScoreStore.
type BestScore struct {
	store     *Store
	namespace string
	key       string
}

// NewBestScore returns a best-score view of store under namespace/key.
func NewBestScore(store *Store, namespace, key string) *BestScore {
	return &BestScore{store: store, namespace: namespace, key: key}
}

// LoadBest returns the persisted best score, or 0 if none was saved.
func (b *BestScore) LoadBest() (int, error) {
	v, _, err := b.store.GetInt(b.namespace, b.key)
	return v, err
}

// SaveBest persists score if it beats the stored best and returns the best
// now stored, which is higher than score when another writer got there first.
func (b *BestScore) SaveBest(score int) (int, error) {
	return b.store.RaiseInt(b.namespace, b.key, score)
}
