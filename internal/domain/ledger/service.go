package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Store is the slice of the employee record the ledger lives on.
type Store interface {
	LedgerPayload(ctx context.Context, employeeID string) (taken, pending string, err error)
	SaveLedgerPayload(ctx context.Context, employeeID string, taken, pending string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load reads and normalizes both date sets. Malformed payloads degrade to an
// empty set; they are logged, never surfaced as fatal.
func (s *Service) Load(ctx context.Context, employeeID string) (Ledger, error) {
	rawTaken, rawPending, err := s.store.LedgerPayload(ctx, employeeID)
	if err != nil {
		return Ledger{}, err
	}

	taken, err := Parse(rawTaken)
	if err != nil && errors.Is(err, ErrMalformedLedger) {
		slog.Warn("malformed vacation ledger, falling back to empty set", "employeeId", employeeID)
	}
	pending, err := Parse(rawPending)
	if err != nil && errors.Is(err, ErrMalformedLedger) {
		slog.Warn("malformed pending ledger, falling back to empty set", "employeeId", employeeID)
	}
	return Ledger{Taken: taken, Pending: pending}, nil
}

// ToggleDay flips one taken day and persists the updated sets in the
// normalized JSON form.
func (s *Service) ToggleDay(ctx context.Context, employeeID, date string) (Ledger, error) {
	if !ValidDate(date) {
		return Ledger{}, fmt.Errorf("invalid date %q", date)
	}
	current, err := s.Load(ctx, employeeID)
	if err != nil {
		return Ledger{}, err
	}
	current.Taken = ToggleDay(current.Taken, date)
	if err := s.persist(ctx, employeeID, current); err != nil {
		return Ledger{}, err
	}
	return current, nil
}

// TogglePending flips one pending-request day.
func (s *Service) TogglePending(ctx context.Context, employeeID, date string) (Ledger, error) {
	if !ValidDate(date) {
		return Ledger{}, fmt.Errorf("invalid date %q", date)
	}
	current, err := s.Load(ctx, employeeID)
	if err != nil {
		return Ledger{}, err
	}
	current.Pending = ToggleDay(current.Pending, date)
	if err := s.persist(ctx, employeeID, current); err != nil {
		return Ledger{}, err
	}
	return current, nil
}

func (s *Service) persist(ctx context.Context, employeeID string, l Ledger) error {
	return s.store.SaveLedgerPayload(ctx, employeeID, Serialize(l.Taken), Serialize(l.Pending))
}
