package people

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/platform/jsonstore"
)

// JSONStore keeps empleados and extras in per-resource JSON files, matching
// the flat-file backend's layout.
type JSONStore struct {
	employees *jsonstore.Collection[Employee]
	extras    *jsonstore.Collection[Extra]
}

func NewJSONStore(dir string) (*JSONStore, error) {
	employees, err := jsonstore.New(dir, "empleados",
		func(e Employee) string { return e.ID },
		func(e *Employee, id string) { e.ID = id },
	)
	if err != nil {
		return nil, err
	}
	extras, err := jsonstore.New(dir, "extras",
		func(e Extra) string { return e.ID },
		func(e *Extra, id string) { e.ID = id },
	)
	if err != nil {
		return nil, err
	}
	return &JSONStore{employees: employees, extras: extras}, nil
}

func (s *JSONStore) ListEmployees(ctx context.Context, locale string) ([]Employee, error) {
	return s.employees.List(func(e Employee) bool {
		return locale == "" || e.Locale == locale
	})
}

func (s *JSONStore) GetEmployee(ctx context.Context, id string) (Employee, error) {
	rows, err := s.employees.List(func(e Employee) bool { return e.ID == id })
	if err != nil {
		return Employee{}, err
	}
	if len(rows) == 0 {
		return Employee{}, ErrNotFound
	}
	return rows[0], nil
}

func (s *JSONStore) CreateEmployee(ctx context.Context, employee Employee) (Employee, error) {
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	if employee.Vacations == "" {
		employee.Vacations = "[]"
	}
	if employee.Pending == "" {
		employee.Pending = "[]"
	}
	if employee.Documents == "" {
		employee.Documents = "[]"
	}
	return s.employees.Create(employee)
}

func (s *JSONStore) UpdateEmployee(ctx context.Context, id string, employee Employee) (Employee, error) {
	updated, err := s.employees.Update(id, func(existing *Employee) {
		existing.Name = employee.Name
		existing.DNI = employee.DNI
		existing.Contract = employee.Contract
		existing.Role = employee.Role
		existing.Salary = employee.Salary
		existing.IBAN = employee.IBAN
		existing.FoodHandler = employee.FoodHandler
		existing.Shift = employee.Shift
		existing.Locale = employee.Locale
		existing.Notes = employee.Notes
		existing.UpdatedAt = time.Now().UTC()
	})
	if errors.Is(err, jsonstore.ErrNotFound) {
		return Employee{}, ErrNotFound
	}
	return updated, err
}

func (s *JSONStore) DeleteEmployee(ctx context.Context, id string) error {
	err := s.employees.Delete(id)
	if errors.Is(err, jsonstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *JSONStore) ListExtras(ctx context.Context, locale string) ([]Extra, error) {
	return s.extras.List(func(e Extra) bool {
		return locale == "" || e.Locale == locale
	})
}

func (s *JSONStore) GetExtra(ctx context.Context, id string) (Extra, error) {
	rows, err := s.extras.List(func(e Extra) bool { return e.ID == id })
	if err != nil {
		return Extra{}, err
	}
	if len(rows) == 0 {
		return Extra{}, ErrNotFound
	}
	return rows[0], nil
}

func (s *JSONStore) CreateExtra(ctx context.Context, extra Extra) (Extra, error) {
	extra.CreatedAt = time.Now().UTC()
	return s.extras.Create(extra)
}

func (s *JSONStore) DeleteExtra(ctx context.Context, id string) error {
	err := s.extras.Delete(id)
	if errors.Is(err, jsonstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *JSONStore) LedgerPayload(ctx context.Context, employeeID string) (string, string, error) {
	employee, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return "", "", err
	}
	return employee.Vacations, employee.Pending, nil
}

func (s *JSONStore) SaveLedgerPayload(ctx context.Context, employeeID, taken, pending string) error {
	_, err := s.employees.Update(employeeID, func(existing *Employee) {
		existing.Vacations = taken
		existing.Pending = pending
		existing.UpdatedAt = time.Now().UTC()
	})
	if errors.Is(err, jsonstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *JSONStore) SaveDocumentsPayload(ctx context.Context, employeeID, documents string) error {
	_, err := s.employees.Update(employeeID, func(existing *Employee) {
		existing.Documents = documents
		existing.UpdatedAt = time.Now().UTC()
	})
	if errors.Is(err, jsonstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
