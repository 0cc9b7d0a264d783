package payroll

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"staffhub/internal/platform/jsonstore"
)

type JSONStore struct {
	nominas *jsonstore.Collection[Nomina]
}

func NewJSONStore(dir string) (*JSONStore, error) {
	nominas, err := jsonstore.New(dir, "nominas",
		func(n Nomina) string { return n.ID },
		func(n *Nomina, id string) { n.ID = id },
	)
	if err != nil {
		return nil, err
	}
	return &JSONStore{nominas: nominas}, nil
}

func (s *JSONStore) ListNominas(ctx context.Context, locale, from, to string) ([]Nomina, error) {
	rows, err := s.nominas.List(func(n Nomina) bool {
		return n.Locale == locale && n.PeriodStart >= from && n.PeriodStart <= to
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PeriodStart != rows[j].PeriodStart {
			return rows[i].PeriodStart > rows[j].PeriodStart
		}
		return rows[i].EmployeeName < rows[j].EmployeeName
	})
	return rows, nil
}

func (s *JSONStore) GetNomina(ctx context.Context, id string) (Nomina, error) {
	rows, err := s.nominas.List(func(n Nomina) bool { return n.ID == id })
	if err != nil {
		return Nomina{}, err
	}
	if len(rows) == 0 {
		return Nomina{}, ErrNotFound
	}
	return rows[0], nil
}

func (s *JSONStore) ReplaceNomina(ctx context.Context, nomina Nomina) (Nomina, error) {
	nomina.ID = uuid.NewString()
	nomina.CreatedAt = time.Now().UTC()
	err := s.nominas.Mutate(func(rows []Nomina) []Nomina {
		kept := make([]Nomina, 0, len(rows)+1)
		for _, row := range rows {
			if row.EmployeeID == nomina.EmployeeID && row.PeriodStart == nomina.PeriodStart {
				continue
			}
			kept = append(kept, row)
		}
		return append(kept, nomina)
	})
	if err != nil {
		return Nomina{}, err
	}
	return nomina, nil
}

func (s *JSONStore) UpdateNomina(ctx context.Context, nomina Nomina) (Nomina, error) {
	updated, err := s.nominas.Update(nomina.ID, func(row *Nomina) {
		row.Amount = nomina.Amount
		row.Deposited = nomina.Deposited
		row.Cash = nomina.Cash
		row.State = nomina.State
		row.FileURL = nomina.FileURL
		row.Notes = nomina.Notes
	})
	if errors.Is(err, jsonstore.ErrNotFound) {
		return Nomina{}, ErrNotFound
	}
	return updated, err
}

func (s *JSONStore) DeleteNomina(ctx context.Context, id string) error {
	err := s.nominas.Delete(id)
	if errors.Is(err, jsonstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
