package ledger

import (
	"context"
	"testing"
)

type fakeStore struct {
	taken   string
	pending string
}

func (f *fakeStore) LedgerPayload(ctx context.Context, employeeID string) (string, string, error) {
	return f.taken, f.pending, nil
}

func (f *fakeStore) SaveLedgerPayload(ctx context.Context, employeeID, taken, pending string) error {
	f.taken = taken
	f.pending = pending
	return nil
}

func TestToggleDayPersistsNormalizedJSON(t *testing.T) {
	store := &fakeStore{taken: "2024-06-02|2024-06-01", pending: ""}
	svc := NewService(store)

	l, err := svc.ToggleDay(context.Background(), "e1", "2024-06-03")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if l.TakenCount() != 3 || l.Remaining() != 27 {
		t.Fatalf("unexpected ledger: %+v", l)
	}

	// Legacy blob must be rewritten in the JSON form.
	if store.taken != `["2024-06-01","2024-06-02","2024-06-03"]` {
		t.Fatalf("unexpected persisted payload: %s", store.taken)
	}
}

func TestToggleDayRejectsInvalidDate(t *testing.T) {
	svc := NewService(&fakeStore{})

	if _, err := svc.ToggleDay(context.Background(), "e1", "03/06/2024"); err == nil {
		t.Fatal("expected invalid date error")
	}
}

func TestLoadRecoversFromMalformedPayload(t *testing.T) {
	store := &fakeStore{taken: "{broken", pending: "also broken"}
	svc := NewService(store)

	l, err := svc.Load(context.Background(), "e1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.TakenCount() != 0 || len(l.Pending) != 0 {
		t.Fatalf("expected empty ledger, got %+v", l)
	}
}

func TestTogglePending(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	l, err := svc.TogglePending(context.Background(), "e1", "2024-08-15")
	if err != nil {
		t.Fatalf("toggle pending: %v", err)
	}
	if len(l.Pending) != 1 || l.Pending[0] != "2024-08-15" {
		t.Fatalf("unexpected pending set: %v", l.Pending)
	}
	if l.TakenCount() != 0 {
		t.Fatalf("pending toggle must not touch taken days")
	}
}
