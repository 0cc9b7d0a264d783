package payroll

import (
	"context"
	"fmt"
	"time"

	"staffhub/internal/domain/people"
	"staffhub/internal/platform/pdf"
)

// EmployeeSource resolves the employee a payslip belongs to.
type EmployeeSource interface {
	GetEmployee(ctx context.Context, id string) (people.Employee, error)
}

// Uploader stores the rendered payslip and hands back its public URL.
type Uploader interface {
	Upload(path string, data []byte) (string, error)
}

type Service struct {
	store     Store
	employees EmployeeSource
	files     Uploader
}

func NewService(store Store, employees EmployeeSource, files Uploader) *Service {
	return &Service{store: store, employees: employees, files: files}
}

// List returns the payslips for the month containing ref.
func (s *Service) List(ctx context.Context, locale string, ref time.Time) ([]Nomina, error) {
	from, to := MonthPeriod(ref)
	return s.store.ListNominas(ctx, locale, from, to)
}

// Upsert writes the payslip for (employee, period), replacing any prior row.
// A zero total defaults to the employee's monthly salary (yearly / 12) as the
// deposited amount.
func (s *Service) Upsert(ctx context.Context, nomina Nomina) (Nomina, error) {
	if err := validPeriod(nomina.PeriodStart, nomina.PeriodEnd); err != nil {
		return Nomina{}, err
	}

	employee, err := s.employees.GetEmployee(ctx, nomina.EmployeeID)
	if err != nil {
		return Nomina{}, err
	}
	nomina.EmployeeName = employee.Name
	nomina.Locale = employee.Locale

	if nomina.Deposited == 0 && nomina.Cash == 0 {
		nomina.Deposited = employee.Salary / 12
	}
	nomina.Amount = nomina.Deposited + nomina.Cash

	if nomina.State == "" {
		nomina.State = StatePendiente
	}
	if _, ok := stateRank[nomina.State]; !ok {
		return Nomina{}, fmt.Errorf("unknown estado %q", nomina.State)
	}

	return s.store.ReplaceNomina(ctx, nomina)
}

func (s *Service) Get(ctx context.Context, id string) (Nomina, error) {
	return s.store.GetNomina(ctx, id)
}

// SetState advances the payslip. Moving backwards is rejected.
func (s *Service) SetState(ctx context.Context, id string, to State) (Nomina, error) {
	nomina, err := s.store.GetNomina(ctx, id)
	if err != nil {
		return Nomina{}, err
	}
	if !CanTransition(nomina.State, to) {
		return Nomina{}, fmt.Errorf("estado %s cannot move to %s", nomina.State, to)
	}
	nomina.State = to
	return s.store.UpdateNomina(ctx, nomina)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteNomina(ctx, id)
}

// GeneratePayslip renders the PDF, uploads it, and marks the row Subida.
func (s *Service) GeneratePayslip(ctx context.Context, id string) (Nomina, error) {
	nomina, err := s.store.GetNomina(ctx, id)
	if err != nil {
		return Nomina{}, err
	}

	start, err := time.Parse(dateLayout, nomina.PeriodStart)
	if err != nil {
		return Nomina{}, err
	}
	end, err := time.Parse(dateLayout, nomina.PeriodEnd)
	if err != nil {
		return Nomina{}, err
	}

	data, err := pdf.RenderPayslip(pdf.PayslipData{
		EmployeeName: nomina.EmployeeName,
		Locale:       nomina.Locale,
		PeriodStart:  start,
		PeriodEnd:    end,
		Deposited:    nomina.Deposited,
		Cash:         nomina.Cash,
		Total:        nomina.Amount,
		Notes:        nomina.Notes,
	})
	if err != nil {
		return Nomina{}, err
	}

	url, err := s.files.Upload(fmt.Sprintf("nominas/%s.pdf", nomina.ID), data)
	if err != nil {
		return Nomina{}, err
	}
	nomina.FileURL = url
	if CanTransition(nomina.State, StateSubida) && stateRank[nomina.State] < stateRank[StateSubida] {
		nomina.State = StateSubida
	}
	return s.store.UpdateNomina(ctx, nomina)
}
