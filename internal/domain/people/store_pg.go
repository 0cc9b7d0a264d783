package people

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{DB: pool}
}

const employeeColumns = `
  id, nombre, dni, contrato, puesto, sueldo, iban, manipulador, turno, locale,
  notas, vacaciones_dias, vacaciones_pendientes, documentos, created_at, updated_at
`

func (s *PGStore) ListEmployees(ctx context.Context, locale string) ([]Employee, error) {
	query := "SELECT " + employeeColumns + " FROM empleados"
	args := []any{}
	if locale != "" {
		query += " WHERE locale = $1"
		args = append(args, locale)
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *PGStore) GetEmployee(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM empleados WHERE id = $1", id)
	employee, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return employee, err
}

func (s *PGStore) CreateEmployee(ctx context.Context, employee Employee) (Employee, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO empleados (nombre, dni, contrato, puesto, sueldo, iban, manipulador, turno, locale, notas, vacaciones_dias, vacaciones_pendientes, documentos)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,
            COALESCE(NULLIF($11,''),'[]'), COALESCE(NULLIF($12,''),'[]'), COALESCE(NULLIF($13,''),'[]'))
    RETURNING id, created_at, updated_at
  `, employee.Name, employee.DNI, employee.Contract, employee.Role, employee.Salary,
		employee.IBAN, employee.FoodHandler, employee.Shift, employee.Locale, employee.Notes,
		employee.Vacations, employee.Pending, employee.Documents,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	return employee, err
}

func (s *PGStore) UpdateEmployee(ctx context.Context, id string, employee Employee) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE empleados
    SET nombre = $2, dni = $3, contrato = $4, puesto = $5, sueldo = $6, iban = $7,
        manipulador = $8, turno = $9, locale = $10, notas = $11, updated_at = now()
    WHERE id = $1
  `, id, employee.Name, employee.DNI, employee.Contract, employee.Role, employee.Salary,
		employee.IBAN, employee.FoodHandler, employee.Shift, employee.Locale, employee.Notes)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.GetEmployee(ctx, id)
}

func (s *PGStore) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM empleados WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) ListExtras(ctx context.Context, locale string) ([]Extra, error) {
	query := "SELECT id, nombre, puesto, telefono, turno, hora_inicio, hora_fin, locale, created_at FROM extras"
	args := []any{}
	if locale != "" {
		query += " WHERE locale = $1"
		args = append(args, locale)
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extras []Extra
	for rows.Next() {
		var extra Extra
		if err := rows.Scan(&extra.ID, &extra.Name, &extra.Role, &extra.Phone, &extra.Shift, &extra.StartTime, &extra.EndTime, &extra.Locale, &extra.CreatedAt); err != nil {
			return nil, err
		}
		extras = append(extras, extra)
	}
	return extras, rows.Err()
}

func (s *PGStore) GetExtra(ctx context.Context, id string) (Extra, error) {
	var extra Extra
	err := s.DB.QueryRow(ctx, `
    SELECT id, nombre, puesto, telefono, turno, hora_inicio, hora_fin, locale, created_at
    FROM extras WHERE id = $1
  `, id).Scan(&extra.ID, &extra.Name, &extra.Role, &extra.Phone, &extra.Shift,
		&extra.StartTime, &extra.EndTime, &extra.Locale, &extra.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Extra{}, ErrNotFound
	}
	return extra, err
}

func (s *PGStore) CreateExtra(ctx context.Context, extra Extra) (Extra, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO extras (nombre, puesto, telefono, turno, hora_inicio, hora_fin, locale)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, created_at
  `, extra.Name, extra.Role, extra.Phone, extra.Shift, extra.StartTime, extra.EndTime, extra.Locale,
	).Scan(&extra.ID, &extra.CreatedAt)
	return extra, err
}

func (s *PGStore) DeleteExtra(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM extras WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) LedgerPayload(ctx context.Context, employeeID string) (string, string, error) {
	var taken, pending string
	err := s.DB.QueryRow(ctx, "SELECT vacaciones_dias, vacaciones_pendientes FROM empleados WHERE id = $1", employeeID).Scan(&taken, &pending)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return taken, pending, err
}

func (s *PGStore) SaveLedgerPayload(ctx context.Context, employeeID, taken, pending string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE empleados SET vacaciones_dias = $2, vacaciones_pendientes = $3, updated_at = now() WHERE id = $1
  `, employeeID, taken, pending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) SaveDocumentsPayload(ctx context.Context, employeeID, documents string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE empleados SET documentos = $2, updated_at = now() WHERE id = $1", employeeID, documents)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Name, &e.DNI, &e.Contract, &e.Role, &e.Salary, &e.IBAN,
		&e.FoodHandler, &e.Shift, &e.Locale, &e.Notes, &e.Vacations, &e.Pending,
		&e.Documents, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}
