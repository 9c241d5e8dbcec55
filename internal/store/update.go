package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// KeyLock hands out one mutex per key so read-modify-write cycles on the
// same key never interleave.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLock creates an empty KeyLock.
func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its release function.
func (k *KeyLock) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Load decodes the JSON value under key. A missing key yields init().
func Load[T any](ctx context.Context, s Store, key string, init func() T) (T, error) {
	var zero T
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return init(), nil
	}
	if err != nil {
		return zero, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("decoding %s: %w", key, err)
	}
	return v, nil
}

// Save encodes v as JSON under key.
func Save[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// Update runs a locked read-modify-write cycle on key. When fn returns an
// error nothing is written and the stored value is left untouched.
func Update[T any](ctx context.Context, s Store, locks *KeyLock, key string, init func() T, fn func(*T) error) (T, error) {
	var zero T
	unlock := locks.Lock(key)
	defer unlock()

	v, err := Load(ctx, s, key, init)
	if err != nil {
		return zero, err
	}
	if err := fn(&v); err != nil {
		return zero, err
	}
	if err := Save(ctx, s, key, v); err != nil {
		return zero, err
	}
	return v, nil
}
