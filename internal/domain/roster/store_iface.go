package roster

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("assignment not found")

type Store interface {
	// ListAssignments returns rows for the locale with from <= fecha <= to,
	// in insertion order.
	ListAssignments(ctx context.Context, locale, from, to string) ([]Assignment, error)

	// ReplaceAssignment deletes any row for (locale, person, date) and inserts
	// the new one. Drivers make the replace atomic: a transaction on postgres,
	// a single locked file write on jsonfile.
	ReplaceAssignment(ctx context.Context, assignment Assignment) (Assignment, error)

	// DeleteAssignment clears (locale, person, date); absent rows are a no-op.
	DeleteAssignment(ctx context.Context, locale, person, date string) error

	// DeleteByPerson clears every assignment for a person in a locale.
	DeleteByPerson(ctx context.Context, locale, person string) error

	LocalHours(ctx context.Context, locale string) (LocalHours, bool, error)
	SaveLocalHours(ctx context.Context, hours LocalHours) (LocalHours, error)
}
