package payroll

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("nomina not found")

type Store interface {
	// ListNominas returns rows for the locale whose period start falls in
	// [from, to], newest first.
	ListNominas(ctx context.Context, locale, from, to string) ([]Nomina, error)

	GetNomina(ctx context.Context, id string) (Nomina, error)

	// ReplaceNomina deletes any row for (employee, period start) and inserts
	// the new one, atomically per driver.
	ReplaceNomina(ctx context.Context, nomina Nomina) (Nomina, error)

	// UpdateNomina rewrites mutable fields of an existing row.
	UpdateNomina(ctx context.Context, nomina Nomina) (Nomina, error)

	DeleteNomina(ctx context.Context, id string) error
}
