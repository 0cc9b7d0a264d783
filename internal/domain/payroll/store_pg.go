package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{DB: pool}
}

const nominaColumns = `id, empleado_id, empleado_nombre, locale, periodo_inicio, periodo_fin,
  importe, importe_ingresado, importe_efectivo, estado, file_url, notas, created_at`

func (s *PGStore) ListNominas(ctx context.Context, locale, from, to string) ([]Nomina, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+nominaColumns+`
    FROM nominas
    WHERE locale = $1 AND periodo_inicio >= $2 AND periodo_inicio <= $3
    ORDER BY periodo_inicio DESC, empleado_nombre
  `, locale, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nominas []Nomina
	for rows.Next() {
		nomina, err := scanNomina(rows)
		if err != nil {
			return nil, err
		}
		nominas = append(nominas, nomina)
	}
	return nominas, rows.Err()
}

func (s *PGStore) GetNomina(ctx context.Context, id string) (Nomina, error) {
	nomina, err := scanNomina(s.DB.QueryRow(ctx, `
    SELECT `+nominaColumns+` FROM nominas WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Nomina{}, ErrNotFound
	}
	return nomina, err
}

// ReplaceNomina runs the delete-then-insert inside one transaction, the same
// replace shape the roster uses.
func (s *PGStore) ReplaceNomina(ctx context.Context, nomina Nomina) (Nomina, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Nomina{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    DELETE FROM nominas WHERE empleado_id = $1 AND periodo_inicio = $2
  `, nomina.EmployeeID, nomina.PeriodStart); err != nil {
		return Nomina{}, err
	}

	if err := tx.QueryRow(ctx, `
    INSERT INTO nominas (empleado_id, empleado_nombre, locale, periodo_inicio, periodo_fin,
      importe, importe_ingresado, importe_efectivo, estado, file_url, notas)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id, created_at
  `, nomina.EmployeeID, nomina.EmployeeName, nomina.Locale, nomina.PeriodStart, nomina.PeriodEnd,
		nomina.Amount, nomina.Deposited, nomina.Cash, string(nomina.State), nomina.FileURL, nomina.Notes,
	).Scan(&nomina.ID, &nomina.CreatedAt); err != nil {
		return Nomina{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Nomina{}, err
	}
	return nomina, nil
}

func (s *PGStore) UpdateNomina(ctx context.Context, nomina Nomina) (Nomina, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE nominas SET
      importe = $2, importe_ingresado = $3, importe_efectivo = $4,
      estado = $5, file_url = $6, notas = $7
    WHERE id = $1
  `, nomina.ID, nomina.Amount, nomina.Deposited, nomina.Cash,
		string(nomina.State), nomina.FileURL, nomina.Notes)
	if err != nil {
		return Nomina{}, err
	}
	if tag.RowsAffected() == 0 {
		return Nomina{}, ErrNotFound
	}
	return nomina, nil
}

func (s *PGStore) DeleteNomina(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM nominas WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanNomina(row pgx.Row) (Nomina, error) {
	var n Nomina
	var start, end time.Time
	var estado string
	err := row.Scan(&n.ID, &n.EmployeeID, &n.EmployeeName, &n.Locale, &start, &end,
		&n.Amount, &n.Deposited, &n.Cash, &estado, &n.FileURL, &n.Notes, &n.CreatedAt)
	if err != nil {
		return Nomina{}, err
	}
	n.PeriodStart = start.Format(dateLayout)
	n.PeriodEnd = end.Format(dateLayout)
	n.State = State(estado)
	return n, nil
}
