package people

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("person not found")

// Store is implemented by both the postgres and the jsonfile drivers. Listing
// with an empty locale returns every row.
type Store interface {
	ListEmployees(ctx context.Context, locale string) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	CreateEmployee(ctx context.Context, employee Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, id string, employee Employee) (Employee, error)
	DeleteEmployee(ctx context.Context, id string) error

	ListExtras(ctx context.Context, locale string) ([]Extra, error)
	GetExtra(ctx context.Context, id string) (Extra, error)
	CreateExtra(ctx context.Context, extra Extra) (Extra, error)
	DeleteExtra(ctx context.Context, id string) error

	// Ledger slice of the employee row; satisfies ledger.Store.
	LedgerPayload(ctx context.Context, employeeID string) (taken, pending string, err error)
	SaveLedgerPayload(ctx context.Context, employeeID string, taken, pending string) error

	SaveDocumentsPayload(ctx context.Context, employeeID string, documents string) error
}
