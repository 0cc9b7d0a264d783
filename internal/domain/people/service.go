package people

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// ShiftCleaner removes roster assignments for a deleted person.
type ShiftCleaner interface {
	DeleteByPerson(ctx context.Context, locale, person string) error
}

type Service struct {
	store   Store
	locales []string
	shifts  ShiftCleaner
}

func NewService(store Store, locales []string, shifts ShiftCleaner) *Service {
	return &Service{store: store, locales: locales, shifts: shifts}
}

func (s *Service) validate(name, locale string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("nombre is required")
	}
	for _, known := range s.locales {
		if strings.EqualFold(known, locale) {
			return nil
		}
	}
	return fmt.Errorf("unknown locale %q", locale)
}

func (s *Service) ListEmployees(ctx context.Context, locale string) ([]Employee, error) {
	return s.store.ListEmployees(ctx, locale)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) CreateEmployee(ctx context.Context, employee Employee) (Employee, error) {
	if err := s.validate(employee.Name, employee.Locale); err != nil {
		return Employee{}, err
	}
	employee.Name = strings.TrimSpace(employee.Name)
	return s.store.CreateEmployee(ctx, employee)
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, employee Employee) (Employee, error) {
	if err := s.validate(employee.Name, employee.Locale); err != nil {
		return Employee{}, err
	}
	employee.Name = strings.TrimSpace(employee.Name)
	return s.store.UpdateEmployee(ctx, id, employee)
}

// DeleteEmployee removes the row and clears the person's roster assignments.
func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	employee, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	if s.shifts != nil {
		if err := s.shifts.DeleteByPerson(ctx, employee.Locale, employee.Name); err != nil {
			slog.Warn("shift cleanup after employee delete failed", "employee", employee.Name, "err", err)
		}
	}
	return nil
}

func (s *Service) ListExtras(ctx context.Context, locale string) ([]Extra, error) {
	return s.store.ListExtras(ctx, locale)
}

func (s *Service) CreateExtra(ctx context.Context, extra Extra) (Extra, error) {
	if err := s.validate(extra.Name, extra.Locale); err != nil {
		return Extra{}, err
	}
	extra.Name = strings.TrimSpace(extra.Name)
	if extra.Shift == "" {
		extra.Shift = "Manana"
	}
	return s.store.CreateExtra(ctx, extra)
}

func (s *Service) GetExtra(ctx context.Context, id string) (Extra, error) {
	return s.store.GetExtra(ctx, id)
}

// DeleteExtra removes the row and clears the person's roster assignments in
// the extra's own location.
func (s *Service) DeleteExtra(ctx context.Context, id string) error {
	extra, err := s.store.GetExtra(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteExtra(ctx, id); err != nil {
		return err
	}
	if s.shifts != nil {
		if err := s.shifts.DeleteByPerson(ctx, extra.Locale, extra.Name); err != nil {
			slog.Warn("shift cleanup after extra delete failed", "extra", extra.Name, "err", err)
		}
	}
	return nil
}

func (s *Service) ListDocuments(ctx context.Context, employeeID string) ([]Document, error) {
	employee, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return ParseDocuments(employee.Documents), nil
}

// AddDocument appends unless the URL is already attached.
func (s *Service) AddDocument(ctx context.Context, employeeID string, doc Document) ([]Document, error) {
	docs, err := s.ListDocuments(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	docs = append(docs, doc)
	docs = dedupeByURL(docs)
	if err := s.store.SaveDocumentsPayload(ctx, employeeID, SerializeDocuments(docs)); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Service) RemoveDocument(ctx context.Context, employeeID, url string) ([]Document, error) {
	docs, err := s.ListDocuments(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	kept := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if doc.URL == url {
			continue
		}
		kept = append(kept, doc)
	}
	if err := s.store.SaveDocumentsPayload(ctx, employeeID, SerializeDocuments(kept)); err != nil {
		return nil, err
	}
	return kept, nil
}

// ImportEmployeesCSV reads rows of nombre,dni,contrato,puesto,sueldo,locale.
// A header row is skipped when detected; bad rows are counted, not fatal.
func (s *Service) ImportEmployeesCSV(ctx context.Context, reader io.Reader) (imported, skipped int, err error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	first := true
	for {
		record, readErr := csvReader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return imported, skipped, readErr
		}
		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "nombre") {
				continue
			}
		}
		if len(record) < 6 {
			skipped++
			continue
		}
		salary, _ := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		employee := Employee{
			Name:     strings.TrimSpace(record[0]),
			DNI:      strings.TrimSpace(record[1]),
			Contract: strings.TrimSpace(record[2]),
			Role:     strings.TrimSpace(record[3]),
			Salary:   salary,
			Shift:    "Manana",
			Locale:   strings.TrimSpace(record[5]),
		}
		if _, createErr := s.CreateEmployee(ctx, employee); createErr != nil {
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped, nil
}
