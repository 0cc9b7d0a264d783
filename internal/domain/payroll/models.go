package payroll

import (
	"fmt"
	"time"
)

// State tracks a payslip through its lifecycle. The order is fixed:
// Pendiente, then Subida once the PDF exists, then Enviada.
type State string

const (
	StatePendiente State = "Pendiente"
	StateSubida    State = "Subida"
	StateEnviada   State = "Enviada"
)

var stateRank = map[State]int{
	StatePendiente: 1,
	StateSubida:    2,
	StateEnviada:   3,
}

// CanTransition allows staying put or moving forward, never back.
func CanTransition(from, to State) bool {
	fromRank, ok := stateRank[from]
	if !ok {
		return false
	}
	toRank, ok := stateRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// Nomina is one payslip row: at most one exists per (employee, period start).
type Nomina struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"empleado_id"`
	EmployeeName string    `json:"empleado_nombre"`
	Locale       string    `json:"locale"`
	PeriodStart  string    `json:"periodo_inicio"`
	PeriodEnd    string    `json:"periodo_fin"`
	Amount       float64   `json:"importe"`
	Deposited    float64   `json:"importe_ingresado"`
	Cash         float64   `json:"importe_efectivo"`
	State        State     `json:"estado"`
	FileURL      string    `json:"file_url,omitempty"`
	Notes        string    `json:"notas,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

const dateLayout = "2006-01-02"

// MonthPeriod returns the payslip period covering the month of ref.
func MonthPeriod(ref time.Time) (string, string) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}

func validPeriod(start, end string) error {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return fmt.Errorf("invalid periodo_inicio %q", start)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return fmt.Errorf("invalid periodo_fin %q", end)
	}
	if to.Before(from) {
		return fmt.Errorf("periodo_fin %s before periodo_inicio %s", end, start)
	}
	return nil
}
