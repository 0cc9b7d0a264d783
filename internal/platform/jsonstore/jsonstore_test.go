package jsonstore

import (
	"errors"
	"testing"
)

type testRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestCollection(t *testing.T) *Collection[testRow] {
	t.Helper()
	coll, err := New(t.TempDir(), "rows",
		func(r testRow) string { return r.ID },
		func(r *testRow, id string) { r.ID = id },
	)
	if err != nil {
		t.Fatalf("new collection: %v", err)
	}
	return coll
}

func TestCreateGeneratesIDAndKeepsOrder(t *testing.T) {
	coll := newTestCollection(t)

	first, err := coll.Create(testRow{Name: "Ana"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}
	if _, err := coll.Create(testRow{Name: "Luis"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := coll.List(nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Ana" || rows[1].Name != "Luis" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	coll := newTestCollection(t)

	_, err := coll.Update("missing", func(r *testRow) { r.Name = "x" })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	coll := newTestCollection(t)

	row, err := coll.Create(testRow{Name: "Ana"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := coll.Delete(row.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := coll.Delete(row.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListFilter(t *testing.T) {
	coll := newTestCollection(t)

	for _, name := range []string{"Ana", "Luis", "Ana"} {
		if _, err := coll.Create(testRow{Name: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	rows, err := coll.List(func(r testRow) bool { return r.Name == "Ana" })
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(rows))
	}
}
