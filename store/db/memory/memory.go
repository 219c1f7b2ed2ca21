// Package memory provides a process-local store driver. Values do not
// survive restarts; it backs tests and the "memory" driver mode.
package memory

import (
	"context"
	"sync"

	"github.com/hrygo/parentcopilot/store"
)

type DB struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewDB() *DB {
	return &DB{values: make(map[string][]byte)}
}

func (d *DB) GetValue(_ context.Context, key string) ([]byte, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	value, ok := d.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (d *DB) SetValue(_ context.Context, key string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[key] = append([]byte(nil), value...)
	return nil
}

func (d *DB) DeleteValue(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.values, key)
	return nil
}

func (d *DB) Close() error {
	return nil
}

var _ store.Driver = (*DB)(nil)
