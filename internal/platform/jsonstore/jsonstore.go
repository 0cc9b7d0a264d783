// Package jsonstore persists records as per-resource JSON files with the same
// CRUD semantics the SQL store offers: insertion-ordered listing, generated
// ids, and NotFound on missing mutation targets.
package jsonstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

type Collection[T any] struct {
	mu    sync.Mutex
	path  string
	getID func(T) string
	setID func(*T, string)
}

func New[T any](dir, resource string, getID func(T) string, setID func(*T, string)) (*Collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Collection[T]{
		path:  filepath.Join(dir, resource+".json"),
		getID: getID,
		setID: setID,
	}, nil
}

// List returns all rows matching filter, in insertion order. A nil filter
// matches everything.
func (c *Collection[T]) List(filter func(T) bool) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.load()
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return rows, nil
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if filter(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (c *Collection[T]) Create(row T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getID(row) == "" {
		c.setID(&row, uuid.NewString())
	}
	rows, err := c.load()
	if err != nil {
		return row, err
	}
	rows = append(rows, row)
	return row, c.save(rows)
}

func (c *Collection[T]) Update(id string, mutate func(*T)) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.load()
	if err != nil {
		return zero, err
	}
	for i := range rows {
		if c.getID(rows[i]) == id {
			mutate(&rows[i])
			c.setID(&rows[i], id)
			if err := c.save(rows); err != nil {
				return zero, err
			}
			return rows[i], nil
		}
	}
	return zero, ErrNotFound
}

func (c *Collection[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.load()
	if err != nil {
		return err
	}
	kept := rows[:0]
	found := false
	for _, row := range rows {
		if c.getID(row) == id {
			found = true
			continue
		}
		kept = append(kept, row)
	}
	if !found {
		return ErrNotFound
	}
	return c.save(kept)
}

// Mutate rewrites the whole collection under the lock. Multi-row changes such
// as delete-then-insert replaces land in a single file write.
func (c *Collection[T]) Mutate(fn func(rows []T) []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.load()
	if err != nil {
		return err
	}
	return c.save(fn(rows))
}

func (c *Collection[T]) load() ([]T, error) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(content) == 0 {
		return nil, nil
	}
	var rows []T
	if err := json.Unmarshal(content, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Collection[T]) save(rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, payload, 0o644)
}
