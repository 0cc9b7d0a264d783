package people

import "time"

// Employee mirrors the empleados row. The vacation and document columns hold
// raw payloads owned by the ledger and document helpers; everything else is
// plain profile data.
type Employee struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	DNI         string    `json:"dni"`
	Contract    string    `json:"contrato"`
	Role        string    `json:"puesto"`
	Salary      float64   `json:"sueldo"`
	IBAN        string    `json:"iban,omitempty"`
	FoodHandler string    `json:"manipulador,omitempty"`
	Shift       string    `json:"turno"`
	Locale      string    `json:"locale"`
	Notes       string    `json:"notas,omitempty"`
	Vacations   string    `json:"vacaciones_dias,omitempty"`
	Pending     string    `json:"vacaciones_pendientes,omitempty"`
	Documents   string    `json:"documentos,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Extra is ad-hoc staff: schedulable like an employee but with a personal
// explicit time window instead of the location defaults.
type Extra struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Role      string    `json:"puesto"`
	Phone     string    `json:"telefono,omitempty"`
	Shift     string    `json:"turno"`
	StartTime string    `json:"hora_inicio"`
	EndTime   string    `json:"hora_fin"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
}

type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size,omitempty"`
}
